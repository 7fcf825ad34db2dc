package models

import "time"

const (
	MaxUsernameLength    = 50
	MaxDisplayNameLength = 100
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// Identity is the reduced projection of a User kept in session state.
type Identity struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (user User) Identity() Identity {
	return Identity{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}
