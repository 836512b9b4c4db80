package domain

import "github.com/google/uuid"

// VotableKind tags the entity a vote targets
type VotableKind string

const (
	VotableKindPost    VotableKind = "post"
	VotableKindComment VotableKind = "comment"
)

// Vote values
const (
	VoteUp   = 1
	VoteDown = -1
)

// ParseVotableKind validates a raw votable type string
func ParseVotableKind(s string) (VotableKind, bool) {
	switch VotableKind(s) {
	case VotableKindPost, VotableKindComment:
		return VotableKind(s), true
	}
	return "", false
}

// IsValidVoteValue reports whether v is an up or down vote
func IsValidVoteValue(v int) bool {
	return v == VoteUp || v == VoteDown
}

// VotableRef identifies a votable entity
type VotableRef struct {
	Kind VotableKind
	ID   uuid.UUID
}

// Votable is implemented by every entity that carries an aggregate vote count
type Votable interface {
	Ref() VotableRef
	GetVoteCount() int
	SetVoteCount(count int)
}

// Vote is one user's standing vote on one votable.
// At most one row exists per (user, votable).
type Vote struct {
	BaseModel
	UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_votes_user_votable,priority:1" json:"userId"`
	VotableType VotableKind `gorm:"type:varchar(20);not null;uniqueIndex:uq_votes_user_votable,priority:2;index:idx_votes_votable,priority:1" json:"votableType"`
	VotableID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_votes_user_votable,priority:3;index:idx_votes_votable,priority:2" json:"votableId"`
	Value       int         `gorm:"type:smallint;not null;check:chk_votes_value,value IN (-1, 1)" json:"value"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}
