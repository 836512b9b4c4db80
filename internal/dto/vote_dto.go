package dto

import (
	"github.com/google/uuid"

	"civic-forum-api/internal/domain"
)

// CastVoteRequest represents an up or down vote on a post or comment.
// Casting the same value twice removes the vote.
type CastVoteRequest struct {
	VotableType string    `json:"votableType" binding:"required" enums:"post,comment" example:"comment"`
	VotableID   uuid.UUID `json:"votableId" binding:"required" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	Value       int       `json:"value" enums:"1,-1" example:"1"`
}

// VoteResult is the caller's standing vote and the recomputed aggregate
type VoteResult struct {
	VotableType domain.VotableKind `json:"votableType"`
	VotableID   uuid.UUID          `json:"votableId"`
	// UserVote is null when the vote was removed
	UserVote  *int `json:"userVote"`
	VoteCount int  `json:"voteCount"`
}
