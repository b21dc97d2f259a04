package models

import (
	"time"
)

// Rating is a user's numeric score (1..5) for an article. One rating per
// user per article; re-rating overwrites the previous score.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_rating_user_article" json:"article_id"`
	Score     int       `gorm:"not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
