package db

import (
	"context"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertColumns are overwritten when a log for the same user and date exists.
var upsertColumns = []string{
	"sleep_hours",
	"movement_minutes",
	"mood_score",
	"energy_score",
	"craving_level",
	"cycle_day",
	"notes",
	"updated_at",
}

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0, limit)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date DESC, id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Upsert inserts the entry or overwrites every measurement of the existing
// row for (user_id, log_date) in one statement.
func (repo *DailyLogRepository) Upsert(ctx context.Context, entry *models.DailyLog) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(entry).Error
}
