package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest represents the request to open a new issue
type CreatePostRequest struct {
	Title string `json:"title" binding:"required,max=255" example:"Broken streetlight on 5th Avenue"`
	Body  string `json:"body" binding:"required"`
}

// PostResponse represents a post with its materialized counters
type PostResponse struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"authorId"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	VoteCount    int       `json:"voteCount"`
	CommentCount int       `json:"commentCount"`
	UserVote     *int      `json:"userVote"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
