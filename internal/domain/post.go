package domain

import "github.com/google/uuid"

// Post represents a civic issue opened for discussion.
// VoteCount and CommentCount are materialized from the votes and comments tables.
type Post struct {
	BaseModel
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;index:idx_posts_author_id" json:"authorId"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	VoteCount    int       `gorm:"not null;default:0" json:"voteCount"`
	CommentCount int       `gorm:"not null;default:0" json:"commentCount"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

func (p *Post) Ref() VotableRef {
	return VotableRef{Kind: VotableKindPost, ID: p.ID}
}

func (p *Post) GetVoteCount() int {
	return p.VoteCount
}

func (p *Post) SetVoteCount(count int) {
	p.VoteCount = count
}
