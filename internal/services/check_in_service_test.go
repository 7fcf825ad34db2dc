package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

type stubDailyLogRepository struct {
	upserted  []models.DailyLog
	upsertErr error
	listErr   error
	limit     int
}

func (repo *stubDailyLogRepository) ListRecentByUser(_ context.Context, _ uint, limit int) ([]models.DailyLog, error) {
	repo.limit = limit
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	return repo.upserted, nil
}

func (repo *stubDailyLogRepository) Upsert(_ context.Context, entry *models.DailyLog) error {
	if repo.upsertErr != nil {
		return repo.upsertErr
	}
	repo.upserted = append(repo.upserted, *entry)
	return nil
}

func TestCheckInServiceSaveUsesConfiguredToday(t *testing.T) {
	t.Parallel()

	repo := &stubDailyLogRepository{}
	service := NewCheckInService(repo, time.FixedZone("UTC-5", -5*60*60))
	service.now = func() time.Time { return time.Date(2024, time.April, 1, 2, 30, 0, 0, time.UTC) }

	entry, err := service.Save(context.Background(), 9, CheckInInput{MoodScore: "7"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if entry.LogDate.Format(CheckInDateLayout) != "2024-03-31" {
		t.Fatalf("expected local date 2024-03-31, got %s", entry.LogDate.Format(CheckInDateLayout))
	}
	if len(repo.upserted) != 1 || repo.upserted[0].UserID != 9 {
		t.Fatalf("expected one upsert for user 9, got %+v", repo.upserted)
	}
}

func TestCheckInServiceSaveSkipsInvalidInput(t *testing.T) {
	t.Parallel()

	repo := &stubDailyLogRepository{}
	service := NewCheckInService(repo, nil)

	if _, err := service.Save(context.Background(), 1, CheckInInput{MoodScore: "42"}); !errors.Is(err, ErrInvalidCheckIn) {
		t.Fatalf("expected ErrInvalidCheckIn, got %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Fatal("expected no write for invalid input")
	}
}

func TestCheckInServiceWrapsRepositoryErrors(t *testing.T) {
	t.Parallel()

	failure := errors.New("disk I/O error")
	repo := &stubDailyLogRepository{upsertErr: failure, listErr: failure}
	service := NewCheckInService(repo, nil)

	if _, err := service.Save(context.Background(), 1, CheckInInput{}); !errors.Is(err, failure) || errors.Is(err, ErrInvalidCheckIn) {
		t.Fatalf("expected wrapped data-access error, got %v", err)
	}
	if _, err := service.RecentLogs(context.Background(), 1); !errors.Is(err, failure) {
		t.Fatalf("expected wrapped list error, got %v", err)
	}
	if repo.limit != models.RecentLogLimit {
		t.Fatalf("expected limit %d, got %d", models.RecentLogLimit, repo.limit)
	}
}
