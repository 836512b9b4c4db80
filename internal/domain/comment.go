package domain

import "github.com/google/uuid"

// CommentType classifies a comment thread
type CommentType string

const (
	CommentTypeDiscussion CommentType = "discussion"
	CommentTypeQuestion   CommentType = "question"
	CommentTypeSolution   CommentType = "solution"
)

// ParseCommentType validates a raw comment type string
func ParseCommentType(s string) (CommentType, bool) {
	switch CommentType(s) {
	case CommentTypeDiscussion, CommentTypeQuestion, CommentTypeSolution:
		return CommentType(s), true
	}
	return "", false
}

// IsRequestable reports whether a client may ask for this type on a top-level comment.
// Solutions only arise as replies to questions.
func (t CommentType) IsRequestable() bool {
	return t == CommentTypeDiscussion || t == CommentTypeQuestion
}

// ReplyTypeFor returns the type a reply inherits from its parent
func ReplyTypeFor(parent CommentType) CommentType {
	if parent == CommentTypeQuestion {
		return CommentTypeSolution
	}
	return parent
}

// Comment represents a node in a post's comment tree.
// Depth is 0 exactly when ParentID is nil. Type is fixed at creation.
type Comment struct {
	BaseModel
	PostID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_comments_post_type_depth,priority:1" json:"postId"`
	ParentID  *uuid.UUID  `gorm:"type:uuid;index:idx_comments_parent_id" json:"parentId"`
	AuthorID  uuid.UUID   `gorm:"type:uuid;not null;index:idx_comments_author_id" json:"authorId"`
	Body      string      `gorm:"type:text;not null" json:"body"`
	Type      CommentType `gorm:"type:varchar(20);not null;index:idx_comments_post_type_depth,priority:2" json:"type"`
	Depth     int         `gorm:"not null;default:0;index:idx_comments_post_type_depth,priority:3" json:"depth"`
	VoteCount int         `gorm:"not null;default:0" json:"voteCount"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// IsRoot reports whether the comment starts a thread
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// NewReply builds a reply under c, applying depth and type inheritance
func (c *Comment) NewReply(authorID uuid.UUID, body string) *Comment {
	parentID := c.ID
	return &Comment{
		PostID:   c.PostID,
		ParentID: &parentID,
		AuthorID: authorID,
		Body:     body,
		Type:     ReplyTypeFor(c.Type),
		Depth:    c.Depth + 1,
	}
}

func (c *Comment) Ref() VotableRef {
	return VotableRef{Kind: VotableKindComment, ID: c.ID}
}

func (c *Comment) GetVoteCount() int {
	return c.VoteCount
}

func (c *Comment) SetVoteCount(count int) {
	c.VoteCount = count
}
