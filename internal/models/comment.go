package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a travel log. A comment has no lifecycle
// independent of its parent log; deleting the log removes its comments.
type Comment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Content     string `gorm:"not null" json:"content"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	TravelLogID uint   `gorm:"not null;index" json:"travel_log_id"`
	User        *User  `gorm:"foreignKey:UserID" json:"-"`
	// Author is the read-side projection of User; recomputed on every read.
	Author    *UserRef       `gorm:"-" json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
