package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/response"
)

// VoteService defines the interface for the vote ledger
type VoteService interface {
	// CastVote records value for the user on ref. Casting the value the user already
	// holds removes the vote; casting the opposite value switches it.
	CastVote(ctx context.Context, userID uuid.UUID, ref domain.VotableRef, value int) (*dto.VoteResult, error)
	// GetUserVote returns the user's standing vote on ref, nil when there is none
	GetUserVote(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*int, error)
}

type voteServiceImpl struct {
	transactor  repository.Transactor
	voteRepo    repository.VoteRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	threadCache cache.ThreadCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewVoteService creates a new instance of VoteService
func NewVoteService(
	transactor repository.Transactor,
	voteRepo repository.VoteRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	threadCache cache.ThreadCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) VoteService {
	return &voteServiceImpl{
		transactor:  transactor,
		voteRepo:    voteRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		threadCache: threadCache,
		metrics:     m,
		logger:      logger,
	}
}

func (s *voteServiceImpl) CastVote(ctx context.Context, userID uuid.UUID, ref domain.VotableRef, value int) (*dto.VoteResult, error) {
	if userID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required to vote", "")
	}
	if _, ok := domain.ParseVotableKind(string(ref.Kind)); !ok {
		return nil, response.NewValidationError("Unknown votable type", "votableType")
	}
	if !domain.IsValidVoteValue(value) {
		return nil, response.NewValidationError("Vote value must be 1 or -1", "value")
	}

	var (
		result       *dto.VoteResult
		outcome      string
		threadPostID uuid.UUID
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		votable, err := s.lockVotable(ctx, ref)
		if err != nil {
			return err
		}
		if comment, ok := votable.(*domain.Comment); ok {
			threadPostID = comment.PostID
		}

		existing, err := s.voteRepo.FindByUserAndVotable(ctx, userID, ref)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var userVote *int
		switch {
		case existing == nil:
			if err := s.voteRepo.Create(ctx, &domain.Vote{
				UserID:      userID,
				VotableType: ref.Kind,
				VotableID:   ref.ID,
				Value:       value,
			}); err != nil {
				return err
			}
			v := value
			userVote = &v
			outcome = metrics.VoteOutcomeCreated
		case existing.Value == value:
			if err := s.voteRepo.Delete(ctx, existing.ID); err != nil {
				return err
			}
			outcome = metrics.VoteOutcomeRemoved
		default:
			if err := s.voteRepo.UpdateValue(ctx, existing.ID, value); err != nil {
				return err
			}
			v := value
			userVote = &v
			outcome = metrics.VoteOutcomeSwitched
		}

		sum, err := s.voteRepo.SumByVotable(ctx, ref)
		if err != nil {
			return err
		}
		votable.SetVoteCount(sum)
		if err := s.storeVoteCount(ctx, votable); err != nil {
			return err
		}

		result = &dto.VoteResult{
			VotableType: ref.Kind,
			VotableID:   ref.ID,
			UserVote:    userVote,
			VoteCount:   votable.GetVoteCount(),
		}
		return nil
	})
	if err != nil {
		if response.CodeOf(err) == response.ErrCodeInternal {
			s.logger.Error("Failed to cast vote",
				zap.String("votable_type", string(ref.Kind)),
				zap.String("votable_id", ref.ID.String()),
				zap.Error(err),
			)
		}
		return nil, translateError(err, "Votable not found", "Failed to cast vote")
	}

	if s.metrics != nil {
		s.metrics.RecordVoteCast(string(ref.Kind), outcome)
	}
	if threadPostID != uuid.Nil {
		s.threadCache.Invalidate(ctx, threadPostID)
	}

	return result, nil
}

// lockVotable loads the entity behind ref with a row lock
func (s *voteServiceImpl) lockVotable(ctx context.Context, ref domain.VotableRef) (domain.Votable, error) {
	switch ref.Kind {
	case domain.VotableKindPost:
		post, err := s.postRepo.FindByIDForUpdate(ctx, ref.ID)
		if err != nil {
			return nil, notFoundOr(err, "Post not found")
		}
		return post, nil
	case domain.VotableKindComment:
		comment, err := s.commentRepo.FindByIDForUpdate(ctx, ref.ID)
		if err != nil {
			return nil, notFoundOr(err, "Comment not found")
		}
		return comment, nil
	}
	return nil, response.NewValidationError("Unknown votable type", "votableType")
}

// storeVoteCount persists the aggregate held by votable
func (s *voteServiceImpl) storeVoteCount(ctx context.Context, votable domain.Votable) error {
	ref := votable.Ref()
	switch ref.Kind {
	case domain.VotableKindPost:
		return s.postRepo.UpdateVoteCount(ctx, ref.ID, votable.GetVoteCount())
	case domain.VotableKindComment:
		return s.commentRepo.UpdateVoteCount(ctx, ref.ID, votable.GetVoteCount())
	}
	return response.NewValidationError("Unknown votable type", "votableType")
}

func (s *voteServiceImpl) GetUserVote(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*int, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	vote, err := s.voteRepo.FindByUserAndVotable(ctx, userID, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load vote", err.Error())
	}
	value := vote.Value
	return &value, nil
}
