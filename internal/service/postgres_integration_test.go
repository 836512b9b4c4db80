//go:build integration

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/client"
	"civic-forum-api/internal/database"
	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/response"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("forum"),
		tcpostgres.WithUsername("forum"),
		tcpostgres.WithPassword("forum"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(database.Config{
		Driver:          "postgres",
		DSN:             dsn,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestPostgres_ConcurrentVotesAndCommentsConverge(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	logger := zap.NewNop()

	transactor := repository.NewTransactor(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	threadCache := cache.NewNoopThreadCache()

	votes := NewVoteService(transactor, voteRepo, postRepo, commentRepo, threadCache, nil, logger)
	comments := NewCommentService(transactor, commentRepo, postRepo, voteRepo, threadCache, client.NewNoOpNotificationClient(), nil, logger)
	posts := NewPostService(postRepo, nil, logger)

	post, err := posts.CreatePost(ctx, uuid.New(), &dto.CreatePostRequest{Title: "Bus stop shelter", Body: "Glass smashed"})
	require.NoError(t, err)
	ref := domain.VotableRef{Kind: domain.VotableKindPost, ID: post.ID}

	const workers = 40
	toggler := uuid.New()
	var wg sync.WaitGroup
	errs := make(chan error, workers*3)

	for i := 0; i < workers; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := votes.CastVote(ctx, uuid.New(), ref, domain.VoteUp)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			// the same user racing against itself; an even number of casts nets out to no vote
			_, err := votes.CastVote(ctx, toggler, ref, domain.VoteDown)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := comments.CreateComment(ctx, post.ID, uuid.New(), &dto.CreateCommentRequest{Body: "me too"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var stored domain.Post
	require.NoError(t, db.Where("id = ?", post.ID).First(&stored).Error)

	var ledger int64
	require.NoError(t, db.Model(&domain.Vote{}).
		Where("votable_type = ? AND votable_id = ?", string(ref.Kind), ref.ID).
		Select("COALESCE(SUM(value), 0)").Scan(&ledger).Error)

	assert.Equal(t, workers, stored.VoteCount)
	assert.Equal(t, int64(stored.VoteCount), ledger)
	assert.Equal(t, workers, stored.CommentCount)
}

func TestPostgres_DeleteCommentRacingVotesLeavesNoOrphans(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	logger := zap.NewNop()

	transactor := repository.NewTransactor(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	threadCache := cache.NewNoopThreadCache()

	votes := NewVoteService(transactor, voteRepo, postRepo, commentRepo, threadCache, nil, logger)
	comments := NewCommentService(transactor, commentRepo, postRepo, voteRepo, threadCache, client.NewNoOpNotificationClient(), nil, logger)
	posts := NewPostService(postRepo, nil, logger)

	const rounds = 10
	const voters = 12

	for round := 0; round < rounds; round++ {
		post, err := posts.CreatePost(ctx, uuid.New(), &dto.CreatePostRequest{Title: "Noise complaint", Body: "Night works"})
		require.NoError(t, err)

		author := uuid.New()
		root, err := comments.CreateComment(ctx, post.ID, author, &dto.CreateCommentRequest{Body: "since 2am"})
		require.NoError(t, err)
		child, err := comments.CreateComment(ctx, post.ID, uuid.New(), &dto.CreateCommentRequest{Body: "same here", ParentID: &root.ID})
		require.NoError(t, err)
		targets := []uuid.UUID{root.ID, child.ID}

		var wg sync.WaitGroup
		errs := make(chan error, voters)
		start := make(chan struct{})

		for i := 0; i < voters; i++ {
			wg.Add(1)
			target := targets[i%len(targets)]
			go func() {
				defer wg.Done()
				<-start
				_, err := votes.CastVote(ctx, uuid.New(), domain.VotableRef{Kind: domain.VotableKindComment, ID: target}, domain.VoteUp)
				errs <- err
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- comments.DeleteComment(ctx, root.ID, domain.Actor{UserID: author})
		}()

		close(start)
		wg.Wait()
		close(errs)

		for err := range errs {
			// a vote that lost the race sees the comment gone
			if err != nil {
				assert.Equal(t, response.ErrCodeNotFound, response.CodeOf(err), err.Error())
			}
		}

		var orphans int64
		require.NoError(t, db.Model(&domain.Vote{}).
			Where("votable_type = ? AND votable_id IN ?", string(domain.VotableKindComment), targets).
			Count(&orphans).Error)
		assert.Zero(t, orphans, "round %d", round)

		var remaining int64
		require.NoError(t, db.Model(&domain.Comment{}).Where("post_id = ?", post.ID).Count(&remaining).Error)
		assert.Zero(t, remaining)
	}
}
