package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/middleware"
	"civic-forum-api/internal/response"
)

// MockVoteService is a mock implementation of VoteService
type MockVoteService struct {
	CastVoteFunc    func(ctx context.Context, userID uuid.UUID, ref domain.VotableRef, value int) (*dto.VoteResult, error)
	GetUserVoteFunc func(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*int, error)
}

func (m *MockVoteService) CastVote(ctx context.Context, userID uuid.UUID, ref domain.VotableRef, value int) (*dto.VoteResult, error) {
	if m.CastVoteFunc != nil {
		return m.CastVoteFunc(ctx, userID, ref, value)
	}
	return &dto.VoteResult{VotableType: ref.Kind, VotableID: ref.ID}, nil
}

func (m *MockVoteService) GetUserVote(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*int, error) {
	if m.GetUserVoteFunc != nil {
		return m.GetUserVoteFunc(ctx, userID, ref)
	}
	return nil, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	CreateCommentFunc     func(ctx context.Context, postID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetCommentFunc        func(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error)
	UpdateCommentBodyFunc func(ctx context.Context, commentID uuid.UUID, actor domain.Actor, body string) (*dto.CommentResponse, error)
	DeleteCommentFunc     func(ctx context.Context, commentID uuid.UUID, actor domain.Actor) error
}

func (m *MockCommentService) CreateComment(ctx context.Context, postID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, postID, authorID, req)
	}
	return &dto.CommentResponse{ID: uuid.New(), PostID: postID, AuthorID: authorID, Body: req.Body}, nil
}

func (m *MockCommentService) GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error) {
	if m.GetCommentFunc != nil {
		return m.GetCommentFunc(ctx, commentID)
	}
	return &dto.CommentResponse{ID: commentID}, nil
}

func (m *MockCommentService) UpdateCommentBody(ctx context.Context, commentID uuid.UUID, actor domain.Actor, body string) (*dto.CommentResponse, error) {
	if m.UpdateCommentBodyFunc != nil {
		return m.UpdateCommentBodyFunc(ctx, commentID, actor, body)
	}
	return &dto.CommentResponse{ID: commentID, Body: body}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID uuid.UUID, actor domain.Actor) error {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, commentID, actor)
	}
	return nil
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	CreatePostFunc func(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, authorID, req)
	}
	return &dto.PostResponse{ID: uuid.New(), AuthorID: authorID, Title: req.Title, Body: req.Body}, nil
}

// MockThreadService is a mock implementation of ThreadService
type MockThreadService struct {
	BuildGroupedTreeFunc func(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, error)
	AttachUserVotesFunc  func(ctx context.Context, tree *dto.GroupedThread, userID uuid.UUID) (*dto.GroupedThread, error)
	GetCommentsFunc      func(ctx context.Context, postID, viewerID uuid.UUID) (*dto.GroupedThread, error)
	GetThreadFunc        func(ctx context.Context, postID, viewerID uuid.UUID) (*dto.ThreadResponse, error)
}

func (m *MockThreadService) BuildGroupedTree(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, error) {
	if m.BuildGroupedTreeFunc != nil {
		return m.BuildGroupedTreeFunc(ctx, postID)
	}
	return &dto.GroupedThread{PostID: postID}, nil
}

func (m *MockThreadService) AttachUserVotes(ctx context.Context, tree *dto.GroupedThread, userID uuid.UUID) (*dto.GroupedThread, error) {
	if m.AttachUserVotesFunc != nil {
		return m.AttachUserVotesFunc(ctx, tree, userID)
	}
	return tree, nil
}

func (m *MockThreadService) GetComments(ctx context.Context, postID, viewerID uuid.UUID) (*dto.GroupedThread, error) {
	if m.GetCommentsFunc != nil {
		return m.GetCommentsFunc(ctx, postID, viewerID)
	}
	return &dto.GroupedThread{PostID: postID}, nil
}

func (m *MockThreadService) GetThread(ctx context.Context, postID, viewerID uuid.UUID) (*dto.ThreadResponse, error) {
	if m.GetThreadFunc != nil {
		return m.GetThreadFunc(ctx, postID, viewerID)
	}
	return &dto.ThreadResponse{Post: &dto.PostResponse{ID: postID}, Comments: &dto.GroupedThread{PostID: postID}}, nil
}

// withActor stands in for middleware.Auth in handler tests. A nil actor leaves the request anonymous.
func withActor(actor *domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ContextUserID, actor.UserID)
			c.Set(middleware.ContextRole, actor.Role)
		}
		c.Next()
	}
}

func newTestEngine(actor *domain.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(withActor(actor))
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func member() *domain.Actor {
	return &domain.Actor{UserID: uuid.New(), Role: domain.RoleMember}
}

func intPtr(v int) *int { return &v }
