package dto

import "github.com/google/uuid"

// CommentNode is a comment with its materialized replies
type CommentNode struct {
	CommentResponse
	UserVote *int `json:"userVote"`
	// HasMoreReplies is set on the deepest loaded level when replies exist below it
	HasMoreReplies bool           `json:"hasMoreReplies"`
	Replies        []*CommentNode `json:"replies"`
}

// GroupCounts holds the number of top-level comments per group
type GroupCounts struct {
	Discussion int `json:"discussion"`
	Question   int `json:"question"`
}

// GroupedThread is a post's comment forest split by top-level type
type GroupedThread struct {
	PostID     uuid.UUID      `json:"postId"`
	Discussion []*CommentNode `json:"discussion"`
	Question   []*CommentNode `json:"question"`
	Counts     GroupCounts    `json:"counts"`
}

// Walk calls fn for every node in the thread, parents before children
func (g *GroupedThread) Walk(fn func(node *CommentNode)) {
	var visit func(nodes []*CommentNode)
	visit = func(nodes []*CommentNode) {
		for _, n := range nodes {
			fn(n)
			visit(n.Replies)
		}
	}
	visit(g.Discussion)
	visit(g.Question)
}

// ThreadResponse is the page read model: a post plus its annotated comments
type ThreadResponse struct {
	Post     *PostResponse  `json:"post"`
	Comments *GroupedThread `json:"comments"`
}
