package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/wellnest/internal/models"
)

const CheckInDateLayout = "2006-01-02"

var ErrInvalidCheckIn = errors.New("invalid check-in")

// CheckInValidationError names the first field that failed validation.
type CheckInValidationError struct {
	Field   string
	Message string
}

func (err *CheckInValidationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Field, err.Message)
}

func (err *CheckInValidationError) Unwrap() error {
	return ErrInvalidCheckIn
}

// CheckInInput carries the raw form values of one check-in submission.
type CheckInInput struct {
	LogDate         string `form:"log_date"`
	SleepHours      string `form:"sleep_hours"`
	MovementMinutes string `form:"movement_minutes"`
	MoodScore       string `form:"mood_score"`
	EnergyScore     string `form:"energy_score"`
	CravingLevel    string `form:"craving_level"`
	CycleDay        string `form:"cycle_day"`
	Notes           string `form:"notes"`
}

type intRange struct {
	field string
	label string
	min   int
	max   int
}

var (
	movementMinutesRange = intRange{field: "movement_minutes", label: "Movement minutes", min: 0, max: 1440}
	moodScoreRange       = intRange{field: "mood_score", label: "Mood", min: 1, max: 10}
	energyScoreRange     = intRange{field: "energy_score", label: "Energy", min: 1, max: 10}
	cravingLevelRange    = intRange{field: "craving_level", label: "Craving level", min: 1, max: 10}
	cycleDayRange        = intRange{field: "cycle_day", label: "Cycle day", min: 1, max: 60}
)

const (
	minSleepHours = 0
	maxSleepHours = 24
)

// ParseCheckIn converts raw form values into a DailyLog for userID. Empty
// optional fields become nil; an empty date means today.
func ParseCheckIn(userID uint, input CheckInInput, today time.Time) (models.DailyLog, error) {
	entry := models.DailyLog{UserID: userID}

	logDate, err := parseCheckInDate(input.LogDate, today)
	if err != nil {
		return models.DailyLog{}, err
	}
	entry.LogDate = logDate

	if entry.SleepHours, err = parseSleepHours(input.SleepHours); err != nil {
		return models.DailyLog{}, err
	}
	ranged := []struct {
		raw    string
		bounds intRange
		target **int
	}{
		{input.MovementMinutes, movementMinutesRange, &entry.MovementMinutes},
		{input.MoodScore, moodScoreRange, &entry.MoodScore},
		{input.EnergyScore, energyScoreRange, &entry.EnergyScore},
		{input.CravingLevel, cravingLevelRange, &entry.CravingLevel},
		{input.CycleDay, cycleDayRange, &entry.CycleDay},
	}
	for _, field := range ranged {
		value, err := parseOptionalInt(field.raw, field.bounds)
		if err != nil {
			return models.DailyLog{}, err
		}
		*field.target = value
	}

	notes := strings.TrimSpace(input.Notes)
	if utf8.RuneCountInString(notes) > models.MaxNotesLength {
		return models.DailyLog{}, &CheckInValidationError{
			Field:   "notes",
			Message: fmt.Sprintf("Notes must be at most %d characters.", models.MaxNotesLength),
		}
	}
	if notes != "" {
		entry.Notes = &notes
	}

	return entry, nil
}

// Today returns midnight UTC of the current calendar date in location.
func Today(now time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	local := now.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func parseCheckInDate(raw string, today time.Time) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return today, nil
	}
	parsed, err := time.Parse(CheckInDateLayout, value)
	if err != nil {
		return time.Time{}, &CheckInValidationError{Field: "log_date", Message: "Date must use the YYYY-MM-DD format."}
	}
	return parsed, nil
}

func parseSleepHours(raw string) (*float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed < minSleepHours || parsed > maxSleepHours {
		return nil, &CheckInValidationError{
			Field:   "sleep_hours",
			Message: fmt.Sprintf("Sleep hours must be a number between %d and %d.", minSleepHours, maxSleepHours),
		}
	}
	return &parsed, nil
}

func parseOptionalInt(raw string, bounds intRange) (*int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < bounds.min || parsed > bounds.max {
		return nil, &CheckInValidationError{
			Field:   bounds.field,
			Message: fmt.Sprintf("%s must be a whole number between %d and %d.", bounds.label, bounds.min, bounds.max),
		}
	}
	return &parsed, nil
}
