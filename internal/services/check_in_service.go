package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

type DailyLogRepository interface {
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.DailyLog, error)
	Upsert(ctx context.Context, entry *models.DailyLog) error
}

type CheckInService struct {
	logs     DailyLogRepository
	location *time.Location
	now      func() time.Time
}

func NewCheckInService(logs DailyLogRepository, location *time.Location) *CheckInService {
	if location == nil {
		location = time.UTC
	}
	return &CheckInService{logs: logs, location: location, now: time.Now}
}

// Today is the default check-in date in the configured time zone.
func (service *CheckInService) Today() time.Time {
	return Today(service.now(), service.location)
}

// Save validates input and writes it as the user's log for that date,
// replacing every field of an existing log.
func (service *CheckInService) Save(ctx context.Context, userID uint, input CheckInInput) (models.DailyLog, error) {
	entry, err := ParseCheckIn(userID, input, service.Today())
	if err != nil {
		return models.DailyLog{}, err
	}

	now := service.now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if err := service.logs.Upsert(ctx, &entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("upsert daily log: %w", err)
	}
	return entry, nil
}

func (service *CheckInService) RecentLogs(ctx context.Context, userID uint) ([]models.DailyLog, error) {
	logs, err := service.logs.ListRecentByUser(ctx, userID, models.RecentLogLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent logs: %w", err)
	}
	return logs, nil
}
