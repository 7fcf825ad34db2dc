package models

import "time"

const (
	MaxNotesLength = 2000
	RecentLogLimit = 7
)

// DailyLog is one wellness check-in. Every measurement is optional; a nil
// pointer is stored as NULL.
type DailyLog struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date"`
	LogDate         time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_logs_user_date"`
	SleepHours      *float64
	MovementMinutes *int
	MoodScore       *int
	EnergyScore     *int
	CravingLevel    *int
	CycleDay        *int
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
