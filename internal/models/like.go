package models

import "time"

// Like represents a user's like on a travel log.
// The combination of UserID and TravelLogID must be unique.
type Like struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_travel_log" json:"user_id"`
	TravelLogID uint      `gorm:"not null;uniqueIndex:idx_user_travel_log" json:"travel_log_id"`
	CreatedAt   time.Time `json:"created_at"`

	User      User      `gorm:"foreignKey:UserID" json:"-"`
	TravelLog TravelLog `gorm:"foreignKey:TravelLogID" json:"-"`
}
