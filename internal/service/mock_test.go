package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"civic-forum-api/internal/client"
	"civic-forum-api/internal/domain"
	"civic-forum-api/internal/dto"
	"civic-forum-api/internal/repository"
)

// MockTransactor runs fn directly on the caller's context
type MockTransactor struct {
	WithinTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	Calls                 int
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.WithinTransactionFunc != nil {
		return m.WithinTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	CreateFunc                 func(ctx context.Context, post *domain.Post) error
	FindByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	FindByIDForUpdateFunc      func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	UpdateVoteCountFunc        func(ctx context.Context, id uuid.UUID, count int) error
	RefreshCommentCountFunc    func(ctx context.Context, id uuid.UUID) (int, error)
	FindVoteCountDriftFunc     func(ctx context.Context) ([]uuid.UUID, error)
	FindCommentCountDriftFunc  func(ctx context.Context) ([]uuid.UUID, error)
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPostRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *MockPostRepository) UpdateVoteCount(ctx context.Context, id uuid.UUID, count int) error {
	if m.UpdateVoteCountFunc != nil {
		return m.UpdateVoteCountFunc(ctx, id, count)
	}
	return nil
}

func (m *MockPostRepository) RefreshCommentCount(ctx context.Context, id uuid.UUID) (int, error) {
	if m.RefreshCommentCountFunc != nil {
		return m.RefreshCommentCountFunc(ctx, id)
	}
	return 0, nil
}

func (m *MockPostRepository) FindVoteCountDrift(ctx context.Context) ([]uuid.UUID, error) {
	if m.FindVoteCountDriftFunc != nil {
		return m.FindVoteCountDriftFunc(ctx)
	}
	return []uuid.UUID{}, nil
}

func (m *MockPostRepository) FindCommentCountDrift(ctx context.Context) ([]uuid.UUID, error) {
	if m.FindCommentCountDriftFunc != nil {
		return m.FindCommentCountDriftFunc(ctx)
	}
	return []uuid.UUID{}, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc                   func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc                 func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIDForUpdateFunc        func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateBodyFunc               func(ctx context.Context, id uuid.UUID, body string) error
	UpdateVoteCountFunc          func(ctx context.Context, id uuid.UUID, count int) error
	DeleteByIDsFunc              func(ctx context.Context, ids []uuid.UUID) (int64, error)
	FindChildIDsFunc             func(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)
	FindRootsFunc                func(ctx context.Context, postID uuid.UUID, commentType domain.CommentType, order repository.RootOrder) ([]*domain.Comment, error)
	FindByParentIDsFunc          func(ctx context.Context, parentIDs []uuid.UUID) ([]*domain.Comment, error)
	FindParentIDsWithRepliesFunc func(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)
	LockByIDsFunc                func(ctx context.Context, ids []uuid.UUID) error
	FindVoteCountDriftFunc       func(ctx context.Context) ([]*domain.Comment, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *MockCommentRepository) UpdateBody(ctx context.Context, id uuid.UUID, body string) error {
	if m.UpdateBodyFunc != nil {
		return m.UpdateBodyFunc(ctx, id, body)
	}
	return nil
}

func (m *MockCommentRepository) UpdateVoteCount(ctx context.Context, id uuid.UUID, count int) error {
	if m.UpdateVoteCountFunc != nil {
		return m.UpdateVoteCountFunc(ctx, id, count)
	}
	return nil
}

func (m *MockCommentRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if m.DeleteByIDsFunc != nil {
		return m.DeleteByIDsFunc(ctx, ids)
	}
	return int64(len(ids)), nil
}

func (m *MockCommentRepository) FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	if m.FindChildIDsFunc != nil {
		return m.FindChildIDsFunc(ctx, parentIDs)
	}
	return []uuid.UUID{}, nil
}

func (m *MockCommentRepository) FindRoots(ctx context.Context, postID uuid.UUID, commentType domain.CommentType, order repository.RootOrder) ([]*domain.Comment, error) {
	if m.FindRootsFunc != nil {
		return m.FindRootsFunc(ctx, postID, commentType, order)
	}
	return []*domain.Comment{}, nil
}

func (m *MockCommentRepository) FindByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByParentIDsFunc != nil {
		return m.FindByParentIDsFunc(ctx, parentIDs)
	}
	return []*domain.Comment{}, nil
}

func (m *MockCommentRepository) FindParentIDsWithReplies(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	if m.FindParentIDsWithRepliesFunc != nil {
		return m.FindParentIDsWithRepliesFunc(ctx, parentIDs)
	}
	return []uuid.UUID{}, nil
}

func (m *MockCommentRepository) LockByIDs(ctx context.Context, ids []uuid.UUID) error {
	if m.LockByIDsFunc != nil {
		return m.LockByIDsFunc(ctx, ids)
	}
	return nil
}

func (m *MockCommentRepository) FindVoteCountDrift(ctx context.Context) ([]*domain.Comment, error) {
	if m.FindVoteCountDriftFunc != nil {
		return m.FindVoteCountDriftFunc(ctx)
	}
	return []*domain.Comment{}, nil
}

// MockVoteRepository is a mock implementation of VoteRepository
type MockVoteRepository struct {
	FindByUserAndVotableFunc func(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*domain.Vote, error)
	CreateFunc               func(ctx context.Context, vote *domain.Vote) error
	UpdateValueFunc          func(ctx context.Context, id uuid.UUID, value int) error
	DeleteFunc               func(ctx context.Context, id uuid.UUID) error
	SumByVotableFunc         func(ctx context.Context, ref domain.VotableRef) (int, error)
	FindValuesByUserFunc     func(ctx context.Context, userID uuid.UUID, kind domain.VotableKind, votableIDs []uuid.UUID) (map[uuid.UUID]int, error)
	DeleteByVotablesFunc     func(ctx context.Context, kind domain.VotableKind, votableIDs []uuid.UUID) (int64, error)
}

func (m *MockVoteRepository) FindByUserAndVotable(ctx context.Context, userID uuid.UUID, ref domain.VotableRef) (*domain.Vote, error) {
	if m.FindByUserAndVotableFunc != nil {
		return m.FindByUserAndVotableFunc(ctx, userID, ref)
	}
	return nil, nil
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vote)
	}
	return nil
}

func (m *MockVoteRepository) UpdateValue(ctx context.Context, id uuid.UUID, value int) error {
	if m.UpdateValueFunc != nil {
		return m.UpdateValueFunc(ctx, id, value)
	}
	return nil
}

func (m *MockVoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockVoteRepository) SumByVotable(ctx context.Context, ref domain.VotableRef) (int, error) {
	if m.SumByVotableFunc != nil {
		return m.SumByVotableFunc(ctx, ref)
	}
	return 0, nil
}

func (m *MockVoteRepository) FindValuesByUser(ctx context.Context, userID uuid.UUID, kind domain.VotableKind, votableIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if m.FindValuesByUserFunc != nil {
		return m.FindValuesByUserFunc(ctx, userID, kind, votableIDs)
	}
	return map[uuid.UUID]int{}, nil
}

func (m *MockVoteRepository) DeleteByVotables(ctx context.Context, kind domain.VotableKind, votableIDs []uuid.UUID) (int64, error) {
	if m.DeleteByVotablesFunc != nil {
		return m.DeleteByVotablesFunc(ctx, kind, votableIDs)
	}
	return 0, nil
}

// MockThreadCache records invalidations and never hits unless LoadFunc says so
type MockThreadCache struct {
	LoadFunc    func(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, int64, bool)
	mu          sync.Mutex
	Invalidated []uuid.UUID
	Stored      map[uuid.UUID]int64
}

func (m *MockThreadCache) Load(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, int64, bool) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, postID)
	}
	return nil, 0, false
}

func (m *MockThreadCache) Store(ctx context.Context, postID uuid.UUID, version int64, thread *dto.GroupedThread) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stored == nil {
		m.Stored = make(map[uuid.UUID]int64)
	}
	m.Stored[postID] = version
}

func (m *MockThreadCache) Invalidate(ctx context.Context, postID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidated = append(m.Invalidated, postID)
}

// MockNotificationClient is a mock implementation of NotificationClient
type MockNotificationClient struct {
	mu   sync.Mutex
	Sent []client.NotificationEvent
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, event)
	return nil
}

func (m *MockNotificationClient) SendBulkNotifications(ctx context.Context, events []client.NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, events...)
	return nil
}
