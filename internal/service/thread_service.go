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
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/response"
)

// replyLevels is how many levels below the roots a thread read materializes
const replyLevels = 3

// ThreadService defines the interface for reading a post's comment forest
type ThreadService interface {
	// BuildGroupedTree loads the roots of both groups and three levels of replies from the store
	BuildGroupedTree(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, error)
	// AttachUserVotes sets userVote on every node of tree for userID in one ledger lookup
	AttachUserVotes(ctx context.Context, tree *dto.GroupedThread, userID uuid.UUID) (*dto.GroupedThread, error)
	// GetComments returns the annotated tree, served from the cache when possible
	GetComments(ctx context.Context, postID, viewerID uuid.UUID) (*dto.GroupedThread, error)
	// GetThread returns the post with the viewer's vote and the annotated tree
	GetThread(ctx context.Context, postID, viewerID uuid.UUID) (*dto.ThreadResponse, error)
}

type threadServiceImpl struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	voteRepo    repository.VoteRepository
	threadCache cache.ThreadCache
	logger      *zap.Logger
}

// NewThreadService creates a new instance of ThreadService
func NewThreadService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	threadCache cache.ThreadCache,
	logger *zap.Logger,
) ThreadService {
	return &threadServiceImpl{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		voteRepo:    voteRepo,
		threadCache: threadCache,
		logger:      logger,
	}
}

func (s *threadServiceImpl) BuildGroupedTree(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, translateError(err, "Post not found", "Failed to fetch post")
	}

	discussion, err := s.commentRepo.FindRoots(ctx, postID, domain.CommentTypeDiscussion, repository.RootOrderTopVoted)
	if err != nil {
		return nil, translateError(err, "", "Failed to fetch comments")
	}
	question, err := s.commentRepo.FindRoots(ctx, postID, domain.CommentTypeQuestion, repository.RootOrderNewest)
	if err != nil {
		return nil, translateError(err, "", "Failed to fetch comments")
	}

	tree := &dto.GroupedThread{
		PostID:     postID,
		Discussion: toCommentNodes(discussion),
		Question:   toCommentNodes(question),
		Counts: dto.GroupCounts{
			Discussion: len(discussion),
			Question:   len(question),
		},
	}

	level := make([]*dto.CommentNode, 0, len(tree.Discussion)+len(tree.Question))
	level = append(level, tree.Discussion...)
	level = append(level, tree.Question...)

	for i := 0; i < replyLevels && len(level) > 0; i++ {
		replies, err := s.commentRepo.FindByParentIDs(ctx, nodeIDs(level))
		if err != nil {
			return nil, translateError(err, "", "Failed to fetch replies")
		}

		// replies arrive ordered, so appending keeps each sibling list ordered
		byParent := make(map[uuid.UUID][]*dto.CommentNode)
		next := make([]*dto.CommentNode, 0, len(replies))
		for _, reply := range replies {
			n := toCommentNode(reply)
			byParent[*reply.ParentID] = append(byParent[*reply.ParentID], n)
			next = append(next, n)
		}
		for _, n := range level {
			if children, ok := byParent[n.ID]; ok {
				n.Replies = children
			}
		}
		level = next
	}

	if len(level) > 0 {
		withReplies, err := s.commentRepo.FindParentIDsWithReplies(ctx, nodeIDs(level))
		if err != nil {
			return nil, translateError(err, "", "Failed to fetch replies")
		}
		more := make(map[uuid.UUID]bool, len(withReplies))
		for _, id := range withReplies {
			more[id] = true
		}
		for _, n := range level {
			n.HasMoreReplies = more[n.ID]
		}
	}

	return tree, nil
}

func (s *threadServiceImpl) AttachUserVotes(ctx context.Context, tree *dto.GroupedThread, userID uuid.UUID) (*dto.GroupedThread, error) {
	if tree == nil {
		return nil, nil
	}

	if userID == uuid.Nil {
		tree.Walk(func(n *dto.CommentNode) { n.UserVote = nil })
		return tree, nil
	}

	ids := make([]uuid.UUID, 0)
	tree.Walk(func(n *dto.CommentNode) { ids = append(ids, n.ID) })
	if len(ids) == 0 {
		return tree, nil
	}

	votes, err := s.voteRepo.FindValuesByUser(ctx, userID, domain.VotableKindComment, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch votes", err.Error())
	}

	tree.Walk(func(n *dto.CommentNode) {
		n.UserVote = nil
		if v, ok := votes[n.ID]; ok {
			value := v
			n.UserVote = &value
		}
	})
	return tree, nil
}

func (s *threadServiceImpl) GetComments(ctx context.Context, postID, viewerID uuid.UUID) (*dto.GroupedThread, error) {
	tree, err := s.loadTree(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.AttachUserVotes(ctx, tree, viewerID)
}

func (s *threadServiceImpl) GetThread(ctx context.Context, postID, viewerID uuid.UUID) (*dto.ThreadResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, translateError(err, "Post not found", "Failed to fetch post")
	}

	postResp := toPostResponse(post)
	if viewerID != uuid.Nil {
		vote, err := s.voteRepo.FindByUserAndVotable(ctx, viewerID, post.Ref())
		switch {
		case err == nil:
			value := vote.Value
			postResp.UserVote = &value
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch vote", err.Error())
		}
	}

	comments, err := s.GetComments(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.ThreadResponse{
		Post:     postResp,
		Comments: comments,
	}, nil
}

// loadTree returns the un-annotated tree from the cache, building and caching it on a miss
func (s *threadServiceImpl) loadTree(ctx context.Context, postID uuid.UUID) (*dto.GroupedThread, error) {
	// On a miss, version is the one read before building. A write that lands
	// mid-build bumps it, leaving this tree under a key no reader asks for.
	cached, version, ok := s.threadCache.Load(ctx, postID)
	if ok {
		return cached, nil
	}

	tree, err := s.BuildGroupedTree(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.threadCache.Store(ctx, postID, version, tree)
	return tree, nil
}

func toCommentNode(c *domain.Comment) *dto.CommentNode {
	return &dto.CommentNode{
		CommentResponse: *toCommentResponse(c),
		Replies:         []*dto.CommentNode{},
	}
}

func toCommentNodes(comments []*domain.Comment) []*dto.CommentNode {
	nodes := make([]*dto.CommentNode, len(comments))
	for i, c := range comments {
		nodes[i] = toCommentNode(c)
	}
	return nodes
}

func nodeIDs(nodes []*dto.CommentNode) []uuid.UUID {
	ids := make([]uuid.UUID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
