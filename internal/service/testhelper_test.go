package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/client"
	"civic-forum-api/internal/database"
	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/repository"
)

// testStack wires the real services over an in-memory SQLite database and miniredis
type testStack struct {
	db       *gorm.DB
	metrics  *metrics.Metrics
	votes    VoteService
	comments CommentService
	threads  ThreadService
	posts    PostService
}

func setupServiceDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.New(database.Config{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestStack(t testing.TB) *testStack {
	t.Helper()
	db := setupServiceDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := zap.NewNop()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), logger)
	threadCache := cache.NewRedisThreadCache(rdb, time.Minute, logger, m)

	transactor := repository.NewTransactor(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	return &testStack{
		db:       db,
		metrics:  m,
		votes:    NewVoteService(transactor, voteRepo, postRepo, commentRepo, threadCache, m, logger),
		comments: NewCommentService(transactor, commentRepo, postRepo, voteRepo, threadCache, client.NewNoOpNotificationClient(), m, logger),
		threads:  NewThreadService(postRepo, commentRepo, voteRepo, threadCache, logger),
		posts:    NewPostService(postRepo, m, logger),
	}
}

func (s *testStack) createPost(t testing.TB) *dto.PostResponse {
	t.Helper()
	post, err := s.posts.CreatePost(context.Background(), uuid.New(), &dto.CreatePostRequest{
		Title: "Streetlights out on Harbor Rd",
		Body:  "Dark for three blocks since the storm",
	})
	require.NoError(t, err)
	return post
}

func (s *testStack) comment(t testing.TB, postID, authorID uuid.UUID, parentID *uuid.UUID, typ string) *dto.CommentResponse {
	t.Helper()
	req := &dto.CreateCommentRequest{Body: "comment body", ParentID: parentID}
	if typ != "" {
		req.Type = &typ
	}
	c, err := s.comments.CreateComment(context.Background(), postID, authorID, req)
	require.NoError(t, err)
	return c
}

func (s *testStack) loadPost(t testing.TB, id uuid.UUID) *domain.Post {
	t.Helper()
	var post domain.Post
	require.NoError(t, s.db.Where("id = ?", id).First(&post).Error)
	return &post
}

func (s *testStack) ledgerSum(t testing.TB, ref domain.VotableRef) int {
	t.Helper()
	var sum int64
	require.NoError(t, s.db.Model(&domain.Vote{}).
		Where("votable_type = ? AND votable_id = ?", string(ref.Kind), ref.ID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&sum).Error)
	return int(sum)
}

func (s *testStack) countComments(t testing.TB, postID uuid.UUID) int {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&domain.Comment{}).Where("post_id = ?", postID).Count(&n).Error)
	return int(n)
}
