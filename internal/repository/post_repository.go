package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-forum-api/internal/domain"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	UpdateVoteCount(ctx context.Context, id uuid.UUID, count int) error
	RefreshCommentCount(ctx context.Context, id uuid.UUID) (int, error)
	FindVoteCountDrift(ctx context.Context) ([]uuid.UUID, error)
	FindCommentCountDrift(ctx context.Context) ([]uuid.UUID, error)
}

// postRepositoryImpl is the GORM implementation of PostRepository
type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: db}
}

func (r *postRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	return dbFromContext(ctx, r.db).Create(post).Error
}

func (r *postRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByIDForUpdate loads the post and locks its row until the surrounding transaction ends
func (r *postRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := forUpdate(dbFromContext(ctx, r.db)).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateVoteCount stores a recomputed aggregate without touching updated_at
func (r *postRepositoryImpl) UpdateVoteCount(ctx context.Context, id uuid.UUID, count int) error {
	return dbFromContext(ctx, r.db).
		Model(&domain.Post{}).
		Where("id = ?", id).
		UpdateColumn("vote_count", count).Error
}

// RefreshCommentCount recounts the post's comments and stores the result
func (r *postRepositoryImpl) RefreshCommentCount(ctx context.Context, id uuid.UUID) (int, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	if err := db.Model(&domain.Comment{}).Where("post_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&domain.Post{}).Where("id = ?", id).UpdateColumn("comment_count", count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// FindVoteCountDrift returns the posts whose vote_count differs from their ledger sum.
// The read takes no locks; callers re-check each row under FindByIDForUpdate before repairing it.
func (r *postRepositoryImpl) FindVoteCountDrift(ctx context.Context) ([]uuid.UUID, error) {
	const ledgerSum = `(SELECT COALESCE(SUM(v.value), 0) FROM votes v WHERE v.votable_type = ? AND v.votable_id = posts.id)`
	ids := make([]uuid.UUID, 0)
	err := dbFromContext(ctx, r.db).
		Model(&domain.Post{}).
		Where("vote_count <> "+ledgerSum, string(domain.VotableKindPost)).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// FindCommentCountDrift returns the posts whose comment_count differs from the number of comments
func (r *postRepositoryImpl) FindCommentCountDrift(ctx context.Context) ([]uuid.UUID, error) {
	const commentTotal = `(SELECT COUNT(*) FROM comments c WHERE c.post_id = posts.id)`
	ids := make([]uuid.UUID, 0)
	err := dbFromContext(ctx, r.db).
		Model(&domain.Post{}).
		Where("comment_count <> " + commentTotal).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
