package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/response"
)

const maxPostTitleLength = 255

// PostService defines the interface for post business logic
type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
}

type postServiceImpl struct {
	postRepo repository.PostRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(postRepo repository.PostRepository, m *metrics.Metrics, logger *zap.Logger) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		metrics:  m,
		logger:   logger,
	}
}

// CreatePost opens a new post with zeroed counters
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if authorID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required to create a post", "")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, response.NewValidationError("Title is required", "title")
	}
	if utf8.RuneCountInString(title) > maxPostTitleLength {
		return nil, response.NewValidationError("Title must be at most 255 characters", "title")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, response.NewValidationError("Body is required", "body")
	}

	post := &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Body:     req.Body,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create post", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create post", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementPostCreated()
	}
	return toPostResponse(post), nil
}

// toPostResponse converts domain.Post to dto.PostResponse without a viewer vote
func toPostResponse(p *domain.Post) *dto.PostResponse {
	return &dto.PostResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Title:        p.Title,
		Body:         p.Body,
		VoteCount:    p.VoteCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
