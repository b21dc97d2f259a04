package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is a slugged content entity owned by a user. The reaction counters
// and the rating average are not persisted; they are computed at query time
// from the reactions and ratings tables.
type Article struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Body        string `gorm:"type:text;not null" json:"body"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"author"`

	LikesCount    int     `gorm:"->" json:"likes_count"`
	DislikesCount int     `gorm:"->" json:"dislikes_count"`
	CommentsCount int     `gorm:"->" json:"comments_count"`
	AverageRating float64 `gorm:"->" json:"average_rating"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
