// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultProfilePicture is the placeholder avatar assigned to new accounts.
const DefaultProfilePicture = "/default-avatar.jpg"

// User represents a registered account in the Wanderlog application.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	ProfilePicture string         `gorm:"default:'/default-avatar.jpg'" json:"profile_picture"`
	Bio            string         `json:"bio"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	TravelLogs     []TravelLog    `gorm:"foreignKey:UserID" json:"travel_logs,omitempty"`
}

// UserRef is the minimal author projection embedded in travel log responses.
// It is computed at read time and never carries credential fields.
type UserRef struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// Ref returns the read-side projection for the user.
func (u *User) Ref() *UserRef {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserRef{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}
