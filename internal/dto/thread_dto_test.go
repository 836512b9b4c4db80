package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func node(children ...*CommentNode) *CommentNode {
	return &CommentNode{CommentResponse: CommentResponse{ID: uuid.New()}, Replies: children}
}

func TestGroupedThread_Walk(t *testing.T) {
	grandchild := node()
	child := node(grandchild)
	discussionRoot := node(child)
	questionRoot := node()

	thread := &GroupedThread{
		Discussion: []*CommentNode{discussionRoot},
		Question:   []*CommentNode{questionRoot},
	}

	visited := make([]uuid.UUID, 0)
	thread.Walk(func(n *CommentNode) { visited = append(visited, n.ID) })

	assert.Equal(t, []uuid.UUID{discussionRoot.ID, child.ID, grandchild.ID, questionRoot.ID}, visited)
}

func TestGroupedThread_WalkEmpty(t *testing.T) {
	calls := 0
	(&GroupedThread{}).Walk(func(*CommentNode) { calls++ })
	assert.Zero(t, calls)
}
