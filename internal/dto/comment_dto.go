package dto

import (
	"time"

	"github.com/google/uuid"

	"civic-forum-api/internal/domain"
)

// CreateCommentRequest represents the request to create a comment
// @Description parentId makes the comment a reply; type is only honoured for top-level comments
type CreateCommentRequest struct {
	Body     string     `json:"body" binding:"required" example:"The crossing light has been out since Monday"`
	ParentID *uuid.UUID `json:"parentId,omitempty" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Type     *string    `json:"type,omitempty" enums:"discussion,question" example:"question"`
}

// UpdateCommentRequest represents the request to edit a comment body
type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentResponse represents a single comment
type CommentResponse struct {
	ID        uuid.UUID          `json:"id"`
	PostID    uuid.UUID          `json:"postId"`
	ParentID  *uuid.UUID         `json:"parentId"`
	AuthorID  uuid.UUID          `json:"authorId"`
	Body      string             `json:"body"`
	Type      domain.CommentType `json:"type"`
	Depth     int                `json:"depth"`
	VoteCount int                `json:"voteCount"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
