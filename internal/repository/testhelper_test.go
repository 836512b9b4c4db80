package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"civic-forum-api/internal/database"
	"civic-forum-api/internal/domain"
)

// setupTestDB opens a private in-memory SQLite database with the forum schema
func setupTestDB(t *testing.T) *gorm.DB {
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

func seedPost(t *testing.T, db *gorm.DB) *domain.Post {
	t.Helper()
	post := &domain.Post{AuthorID: uuid.New(), Title: "Pothole on Main St", Body: "Deep enough to lose a wheel"}
	require.NoError(t, db.Create(post).Error)
	return post
}

type commentSeed struct {
	parent    *domain.Comment
	typ       domain.CommentType
	voteCount int
	createdAt time.Time
}

func seedComment(t *testing.T, db *gorm.DB, post *domain.Post, s commentSeed) *domain.Comment {
	t.Helper()
	var c *domain.Comment
	if s.parent != nil {
		c = s.parent.NewReply(uuid.New(), "reply")
	} else {
		c = &domain.Comment{PostID: post.ID, AuthorID: uuid.New(), Body: "root", Type: s.typ}
	}
	c.VoteCount = s.voteCount
	if !s.createdAt.IsZero() {
		c.CreatedAt = s.createdAt
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
