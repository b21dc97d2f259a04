package models

import (
	"time"
)

// Reaction values. An article holds at most one reaction per user.
const (
	ReactionLike    = 1
	ReactionDislike = -1
)

// Reaction is a user's like or dislike on an article. Rows are deleted
// outright when a reaction is withdrawn so the unique index stays meaningful.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_reaction_user_article" json:"article_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
