package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the public-facing extension of a User account. A user has at
// most one profile (unique index on UserID); the profile can be deactivated
// and reactivated independently of the account itself.
type Profile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	Username      string    `gorm:"-" json:"username"`
	Avatar        string    `json:"avatar"`
	Bio           string    `gorm:"type:text" json:"bio"`
	ActiveProfile bool      `gorm:"default:true;not null" json:"active_profile"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AfterFind copies the owning user's username into the serialized form when
// the association was preloaded.
func (p *Profile) AfterFind(_ *gorm.DB) error {
	if p.User.Username != "" {
		p.Username = p.User.Username
	}
	return nil
}
