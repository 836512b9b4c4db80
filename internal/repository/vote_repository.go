package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civic-forum-api/internal/domain"
)

// VoteRepository is the vote ledger: one row per (user, votable)
type VoteRepository interface {
	FindByUserAndVotable(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*domain.Vote, error)
	Create(ctx context.Context, vote *domain.Vote) error
	UpdateValue(ctx context.Context, id uuid.UUID, value int) error
	Delete(ctx context.Context, id uuid.UUID) error
	SumByVotable(ctx context.Context, ref domain.VotableRef) (int, error)
	FindValuesByUser(ctx context.Context, userID uuid.UUID, kind domain.VotableKind, votableIDs []uuid.UUID) (map[uuid.UUID]int, error)
	DeleteByVotables(ctx context.Context, kind domain.VotableKind, votableIDs []uuid.UUID) (int64, error)
}

// voteRepositoryImpl is the GORM implementation of VoteRepository
type voteRepositoryImpl struct {
	db *gorm.DB
}

// NewVoteRepository creates a new instance of VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepositoryImpl{db: db}
}

// FindByUserAndVotable returns gorm.ErrRecordNotFound when the user has no vote on ref
func (r *voteRepositoryImpl) FindByUserAndVotable(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*domain.Vote, error) {
	var vote domain.Vote
	if err := dbFromContext(ctx, r.db).
		Where("user_id = ? AND votable_type = ? AND votable_id = ?", userID, string(ref.Kind), ref.ID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepositoryImpl) Create(ctx context.Context, vote *domain.Vote) error {
	return dbFromContext(ctx, r.db).Create(vote).Error
}

func (r *voteRepositoryImpl) UpdateValue(ctx context.Context, id uuid.UUID, value int) error {
	return dbFromContext(ctx, r.db).
		Model(&domain.Vote{}).
		Where("id = ?", id).
		Update("value", value).Error
}

func (r *voteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFromContext(ctx, r.db).Where("id = ?", id).Delete(&domain.Vote{}).Error
}

// SumByVotable returns the sum of all vote values on ref, 0 when there are none
func (r *voteRepositoryImpl) SumByVotable(ctx context.Context, ref domain.VotableRef) (int, error) {
	var sum int64
	if err := dbFromContext(ctx, r.db).
		Model(&domain.Vote{}).
		Where("votable_type = ? AND votable_id = ?", string(ref.Kind), ref.ID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return int(sum), nil
}

type votableValue struct {
	VotableID uuid.UUID
	Value     int
}

// FindValuesByUser returns the user's vote value keyed by votable id.
// Votables the user has not voted on are absent from the map.
func (r *voteRepositoryImpl) FindValuesByUser(ctx context.Context, userID uuid.UUID, kind domain.VotableKind, votableIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	values := make(map[uuid.UUID]int)
	for _, chunk := range chunkIDs(votableIDs, inClauseChunk) {
		var rows []votableValue
		if err := dbFromContext(ctx, r.db).
			Model(&domain.Vote{}).
			Select("votable_id, value").
			Where("user_id = ? AND votable_type = ? AND votable_id IN ?", userID, string(kind), chunk).
			Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			values[row.VotableID] = row.Value
		}
	}
	return values, nil
}

// DeleteByVotables removes every ledger row on the given votables
func (r *voteRepositoryImpl) DeleteByVotables(ctx context.Context, kind domain.VotableKind, votableIDs []uuid.UUID) (int64, error) {
	var deleted int64
	for _, chunk := range chunkIDs(votableIDs, inClauseChunk) {
		result := dbFromContext(ctx, r.db).
			Where("votable_type = ? AND votable_id IN ?", string(kind), chunk).
			Delete(&domain.Vote{})
		if result.Error != nil {
			return deleted, result.Error
		}
		deleted += result.RowsAffected
	}
	return deleted, nil
}
