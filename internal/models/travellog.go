package models

import (
	"time"

	"gorm.io/gorm"
)

// TravelLog is the aggregate root for a trip entry. Comments belong
// exclusively to their log and are returned in insertion order; likes are a
// set of user IDs with no payload.
type TravelLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"not null" json:"location"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	ImageURL    string    `json:"image_url"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	Comments    []Comment `gorm:"foreignKey:TravelLogID" json:"comments"`
	// Author is the read-side projection of User; recomputed on every read.
	Author *UserRef `gorm:"-" json:"author"`
	// Likes holds the IDs of users who liked this log (computed).
	Likes []uint `gorm:"-" json:"likes"`
	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Resolve fills the read-side projections (log author, comment authors) from
// the preloaded relations. Missing users resolve to a nil author rather than
// an error.
func (l *TravelLog) Resolve() {
	l.Author = l.User.Ref()
	for i := range l.Comments {
		l.Comments[i].Author = l.Comments[i].User.Ref()
	}
	if l.Likes == nil {
		l.Likes = []uint{}
	}
}
