package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/client"
	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/response"
)

// CommentService defines the interface for comment tree writes
type CommentService interface {
	CreateComment(ctx context.Context, postID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error)
	UpdateCommentBody(ctx context.Context, commentID uuid.UUID, actor domain.Actor, body string) (*dto.CommentResponse, error)
	// DeleteComment removes the comment together with every reply below it
	DeleteComment(ctx context.Context, commentID uuid.UUID, actor domain.Actor) error
}

type commentServiceImpl struct {
	transactor         repository.Transactor
	commentRepo        repository.CommentRepository
	postRepo           repository.PostRepository
	voteRepo           repository.VoteRepository
	threadCache        cache.ThreadCache
	notificationClient client.NotificationClient
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	transactor repository.Transactor,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	voteRepo repository.VoteRepository,
	threadCache cache.ThreadCache,
	notificationClient client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		transactor:         transactor,
		commentRepo:        commentRepo,
		postRepo:           postRepo,
		voteRepo:           voteRepo,
		threadCache:        threadCache,
		notificationClient: notificationClient,
		metrics:            m,
		logger:             logger,
	}
}

// CreateComment adds a top-level comment or a reply and recounts the post's comments.
// A reply takes its depth and type from the parent; any requested type is discarded.
func (s *commentServiceImpl) CreateComment(ctx context.Context, postID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if authorID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required to comment", "")
	}
	if err := validateCommentBody(req.Body); err != nil {
		return nil, err
	}

	requestedType := domain.CommentTypeDiscussion
	if req.Type != nil {
		t, ok := domain.ParseCommentType(*req.Type)
		if !ok || !t.IsRequestable() {
			return nil, response.NewValidationError("Comment type must be discussion or question", "type")
		}
		requestedType = t
	}

	var (
		comment      *domain.Comment
		postAuthorID uuid.UUID
		parent       *domain.Comment
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		post, err := s.postRepo.FindByIDForUpdate(ctx, postID)
		if err != nil {
			return notFoundOr(err, "Post not found")
		}
		postAuthorID = post.AuthorID

		parent = nil
		if req.ParentID != nil {
			parent, err = s.commentRepo.FindByID(ctx, *req.ParentID)
			if err != nil {
				return notFoundOr(err, "Parent comment not found")
			}
			if parent.PostID != postID {
				return response.NewValidationError("Parent comment belongs to another post", "parentId")
			}
			comment = parent.NewReply(authorID, req.Body)
		} else {
			comment = &domain.Comment{
				PostID:   postID,
				AuthorID: authorID,
				Body:     req.Body,
				Type:     requestedType,
			}
		}

		if err := s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}
		_, err = s.postRepo.RefreshCommentCount(ctx, postID)
		return err
	})
	if err != nil {
		s.logIfInternal("Failed to create comment", err, zap.String("post_id", postID.String()))
		return nil, translateError(err, "Post not found", "Failed to create comment")
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated(string(comment.Type))
	}
	s.threadCache.Invalidate(ctx, postID)
	s.notifyNewComment(ctx, comment, postAuthorID, parent)

	return toCommentResponse(comment), nil
}

func (s *commentServiceImpl) GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, translateError(err, "Comment not found", "Failed to fetch comment")
	}
	return toCommentResponse(comment), nil
}

// UpdateCommentBody changes only the body. Type, depth and parent never change after creation.
func (s *commentServiceImpl) UpdateCommentBody(ctx context.Context, commentID uuid.UUID, actor domain.Actor, body string) (*dto.CommentResponse, error) {
	if actor.UserID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required to edit a comment", "")
	}
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}

	var updated *domain.Comment
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		comment, err := s.commentRepo.FindByIDForUpdate(ctx, commentID)
		if err != nil {
			return notFoundOr(err, "Comment not found")
		}
		if !actor.CanModify(comment.AuthorID) {
			return response.NewForbiddenError("Only the author or an administrator can edit this comment", "")
		}
		if err := s.commentRepo.UpdateBody(ctx, commentID, body); err != nil {
			return err
		}
		updated, err = s.commentRepo.FindByID(ctx, commentID)
		return err
	})
	if err != nil {
		s.logIfInternal("Failed to update comment", err, zap.String("comment_id", commentID.String()))
		return nil, translateError(err, "Comment not found", "Failed to update comment")
	}

	s.threadCache.Invalidate(ctx, updated.PostID)
	return toCommentResponse(updated), nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID uuid.UUID, actor domain.Actor) error {
	if actor.UserID == uuid.Nil {
		return response.NewUnauthorizedError("Authentication required to delete a comment", "")
	}

	var (
		postID  uuid.UUID
		deleted int64
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		comment, err := s.commentRepo.FindByID(ctx, commentID)
		if err != nil {
			return notFoundOr(err, "Comment not found")
		}
		if !actor.CanModify(comment.AuthorID) {
			return response.NewForbiddenError("Only the author or an administrator can delete this comment", "")
		}
		postID = comment.PostID

		// Post first, same order as CreateComment
		if _, err := s.postRepo.FindByIDForUpdate(ctx, postID); err != nil {
			return err
		}
		// CastVote locks only the comment it votes on, so every comment in the
		// subtree is locked before its votes are cleared
		if _, err := s.commentRepo.FindByIDForUpdate(ctx, comment.ID); err != nil {
			return notFoundOr(err, "Comment not found")
		}

		subtree, err := s.collectSubtree(ctx, comment.ID)
		if err != nil {
			return err
		}
		if err := s.commentRepo.LockByIDs(ctx, subtree[1:]); err != nil {
			return err
		}
		if _, err := s.voteRepo.DeleteByVotables(ctx, domain.VotableKindComment, subtree); err != nil {
			return err
		}
		deleted, err = s.commentRepo.DeleteByIDs(ctx, subtree)
		if err != nil {
			return err
		}
		_, err = s.postRepo.RefreshCommentCount(ctx, postID)
		return err
	})
	if err != nil {
		s.logIfInternal("Failed to delete comment", err, zap.String("comment_id", commentID.String()))
		return translateError(err, "Comment not found", "Failed to delete comment")
	}

	if s.metrics != nil {
		s.metrics.AddCommentsDeleted(int(deleted))
	}
	s.threadCache.Invalidate(ctx, postID)

	s.logger.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("post_id", postID.String()),
		zap.Int64("removed", deleted),
	)
	return nil
}

// collectSubtree returns rootID and the ids of all its descendants, one query per level
func (s *commentServiceImpl) collectSubtree(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}
	for len(frontier) > 0 {
		children, err := s.commentRepo.FindChildIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}
	return ids, nil
}

// notifyNewComment tells the parent author about a reply and the post author about
// activity on their post. Nobody is notified about their own comment.
func (s *commentServiceImpl) notifyNewComment(ctx context.Context, comment *domain.Comment, postAuthorID uuid.UUID, parent *domain.Comment) {
	events := make([]client.NotificationEvent, 0, 2)
	notified := map[uuid.UUID]bool{comment.AuthorID: true}

	if parent != nil && !notified[parent.AuthorID] {
		notified[parent.AuthorID] = true
		events = append(events, client.NotificationEvent{
			Type:         client.NotificationCommentReply,
			ActorID:      comment.AuthorID,
			TargetUserID: parent.AuthorID,
			PostID:       comment.PostID,
			ResourceType: "comment",
			ResourceID:   comment.ID,
			Metadata:     map[string]interface{}{"parentId": parent.ID.String()},
		})
	}
	if !notified[postAuthorID] {
		events = append(events, client.NotificationEvent{
			Type:         client.NotificationCommentAdded,
			ActorID:      comment.AuthorID,
			TargetUserID: postAuthorID,
			PostID:       comment.PostID,
			ResourceType: "comment",
			ResourceID:   comment.ID,
			Metadata:     map[string]interface{}{"commentType": string(comment.Type)},
		})
	}

	var err error
	switch len(events) {
	case 0:
		return
	case 1:
		err = s.notificationClient.SendNotification(ctx, events[0])
	default:
		err = s.notificationClient.SendBulkNotifications(ctx, events)
	}
	if err != nil {
		s.logger.Warn("Failed to notify about new comment",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *commentServiceImpl) logIfInternal(msg string, err error, fields ...zap.Field) {
	if response.CodeOf(err) == response.ErrCodeInternal {
		s.logger.Error(msg, append(fields, zap.Error(err))...)
	}
}

// toCommentResponse converts domain.Comment to dto.CommentResponse
func toCommentResponse(c *domain.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		Type:      c.Type,
		Depth:     c.Depth,
		VoteCount: c.VoteCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
