// ABOUTME: Water intake, step count, and activity records.
// ABOUTME: Every record is owned by one user and dated by calendar day.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for record dates.
const DateLayout = "2006-01-02"

// Owned is implemented by every per-user record.
type Owned interface {
	OwnerID() string
}

// Day returns the UTC calendar day of t.
func Day(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Timestamp normalizes t to UTC with millisecond precision.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// WaterIntake is one logged drink, in millilitres.
type WaterIntake struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"user_id"`
	Amount    int       `json:"amount" yaml:"amount"`
	Date      string    `json:"date" yaml:"date"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}

// NewWaterIntake creates a water record dated on the day of now.
func NewWaterIntake(userID string, amount int, now time.Time) WaterIntake {
	return WaterIntake{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Date:      Day(now),
		CreatedAt: Timestamp(now),
	}
}

func (w WaterIntake) OwnerID() string { return w.UserID }

// StepCount is the running step total of one user for one day.
type StepCount struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      string    `json:"userId" yaml:"user_id"`
	Steps       int       `json:"steps" yaml:"steps"`
	Date        string    `json:"date" yaml:"date"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
	ImportedIDs []string  `json:"importedIds,omitempty" yaml:"imported_ids,omitempty"`
}

// NewStepCount creates a step record dated on the day of now.
func NewStepCount(userID string, steps int, now time.Time) StepCount {
	return StepCount{
		ID:        uuid.NewString(),
		UserID:    userID,
		Steps:     steps,
		Date:      Day(now),
		CreatedAt: Timestamp(now),
	}
}

func (s StepCount) OwnerID() string { return s.UserID }

// Activity is a free-form logged activity.
type Activity struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      string    `json:"userId" yaml:"user_id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Duration    int       `json:"duration" yaml:"duration"`
	Date        string    `json:"date" yaml:"date"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
}

// NewActivity holds the caller-supplied fields of an activity.
type NewActivity struct {
	Name        string
	Description string
	Duration    int
	Date        string
}

// Build assigns an id, owner, and creation time.
func (n NewActivity) Build(userID string, now time.Time) Activity {
	return Activity{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        n.Name,
		Description: n.Description,
		Duration:    n.Duration,
		Date:        n.Date,
		CreatedAt:   Timestamp(now),
	}
}

func (a Activity) OwnerID() string { return a.UserID }
