package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-forum-api/internal/domain"
)

// RootOrder selects how top-level comments are sorted
type RootOrder int

const (
	// RootOrderTopVoted sorts by vote count, highest first
	RootOrderTopVoted RootOrder = iota
	// RootOrderNewest sorts by creation time, newest first
	RootOrderNewest
)

func (o RootOrder) clause() string {
	if o == RootOrderNewest {
		return "created_at DESC, id ASC"
	}
	return "vote_count DESC, id ASC"
}

// inClauseChunk bounds IN lists below the SQLite host-parameter limit
const inClauseChunk = 900

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateBody(ctx context.Context, id uuid.UUID, body string) error
	UpdateVoteCount(ctx context.Context, id uuid.UUID, count int) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)
	FindRoots(ctx context.Context, postID uuid.UUID, commentType domain.CommentType, order RootOrder) ([]*domain.Comment, error)
	FindByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*domain.Comment, error)
	FindParentIDsWithReplies(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)
	LockByIDs(ctx context.Context, ids []uuid.UUID) error
	FindVoteCountDrift(ctx context.Context) ([]*domain.Comment, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return dbFromContext(ctx, r.db).Create(comment).Error
}

func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByIDForUpdate loads the comment and locks its row until the surrounding transaction ends
func (r *commentRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := forUpdate(dbFromContext(ctx, r.db)).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateBody changes only the body (and updated_at)
func (r *commentRepositoryImpl) UpdateBody(ctx context.Context, id uuid.UUID, body string) error {
	result := dbFromContext(ctx, r.db).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("body", body)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateVoteCount stores a recomputed aggregate without touching updated_at
func (r *commentRepositoryImpl) UpdateVoteCount(ctx context.Context, id uuid.UUID, count int) error {
	return dbFromContext(ctx, r.db).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		UpdateColumn("vote_count", count).Error
}

func (r *commentRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, chunk := range chunkIDs(ids, inClauseChunk) {
		result := dbFromContext(ctx, r.db).Where("id IN ?", chunk).Delete(&domain.Comment{})
		if result.Error != nil {
			return deleted, result.Error
		}
		deleted += result.RowsAffected
	}
	return deleted, nil
}

// FindChildIDs returns the ids of direct replies to any of parentIDs
func (r *commentRepositoryImpl) FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for _, chunk := range chunkIDs(parentIDs, inClauseChunk) {
		var part []uuid.UUID
		if err := dbFromContext(ctx, r.db).
			Model(&domain.Comment{}).
			Where("parent_id IN ?", chunk).
			Pluck("id", &part).Error; err != nil {
			return nil, err
		}
		ids = append(ids, part...)
	}
	return ids, nil
}

// FindRoots returns the top-level comments of one type on a post
func (r *commentRepositoryImpl) FindRoots(ctx context.Context, postID uuid.UUID, commentType domain.CommentType, order RootOrder) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := dbFromContext(ctx, r.db).
		Where("post_id = ? AND type = ? AND parent_id IS NULL AND depth = 0", postID, string(commentType)).
		Order(order.clause()).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByParentIDs returns the direct replies of all given parents, top voted first
func (r *commentRepositoryImpl) FindByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*domain.Comment, error) {
	comments := make([]*domain.Comment, 0)
	for _, chunk := range chunkIDs(parentIDs, inClauseChunk) {
		var part []*domain.Comment
		if err := dbFromContext(ctx, r.db).
			Where("parent_id IN ?", chunk).
			Order("vote_count DESC, id ASC").
			Find(&part).Error; err != nil {
			return nil, err
		}
		comments = append(comments, part...)
	}
	return comments, nil
}

// FindParentIDsWithReplies returns the subset of parentIDs that have at least one reply
func (r *commentRepositoryImpl) FindParentIDsWithReplies(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	for _, chunk := range chunkIDs(parentIDs, inClauseChunk) {
		var part []uuid.UUID
		if err := dbFromContext(ctx, r.db).
			Model(&domain.Comment{}).
			Where("parent_id IN ?", chunk).
			Distinct().
			Pluck("parent_id", &part).Error; err != nil {
			return nil, err
		}
		ids = append(ids, part...)
	}
	return ids, nil
}

// LockByIDs row-locks the given comments until the surrounding transaction ends
func (r *commentRepositoryImpl) LockByIDs(ctx context.Context, ids []uuid.UUID) error {
	for _, chunk := range chunkIDs(ids, inClauseChunk) {
		var locked []uuid.UUID
		if err := forUpdate(dbFromContext(ctx, r.db)).
			Model(&domain.Comment{}).
			Where("id IN ?", chunk).
			Order("id ASC").
			Pluck("id", &locked).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindVoteCountDrift returns id and post_id of every comment whose vote_count differs from its ledger sum
func (r *commentRepositoryImpl) FindVoteCountDrift(ctx context.Context) ([]*domain.Comment, error) {
	const ledgerSum = `(SELECT COALESCE(SUM(v.value), 0) FROM votes v WHERE v.votable_type = ? AND v.votable_id = comments.id)`
	comments := make([]*domain.Comment, 0)
	err := dbFromContext(ctx, r.db).
		Select("id", "post_id").
		Where("vote_count <> "+ledgerSum, string(domain.VotableKindComment)).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}
