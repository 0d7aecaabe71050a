// ABOUTME: Workout model and WorkoutType enum for exercise tracking.
// ABOUTME: A workout has a name, type, duration in minutes, and calendar date.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutType classifies a workout.
type WorkoutType string

const (
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutStrength    WorkoutType = "strength"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutSports      WorkoutType = "sports"
	WorkoutOther       WorkoutType = "other"
)

// AllWorkoutTypes returns all valid workout types.
var AllWorkoutTypes = []WorkoutType{
	WorkoutCardio, WorkoutStrength, WorkoutFlexibility, WorkoutSports, WorkoutOther,
}

// IsValidWorkoutType checks if a string is a valid workout type.
func IsValidWorkoutType(s string) bool {
	for _, wt := range AllWorkoutTypes {
		if string(wt) == s {
			return true
		}
	}
	return false
}

// Workout represents an exercise session.
type Workout struct {
	ID        string      `json:"id" yaml:"id"`
	UserID    string      `json:"userId" yaml:"user_id"`
	Name      string      `json:"name" yaml:"name"`
	Type      WorkoutType `json:"type" yaml:"type"`
	Duration  int         `json:"duration" yaml:"duration"`
	Date      string      `json:"date" yaml:"date"`
	CreatedAt time.Time   `json:"createdAt" yaml:"created_at"`
}

// NewWorkout holds the caller-supplied fields of a workout.
type NewWorkout struct {
	Name     string
	Type     WorkoutType
	Duration int
	Date     string
}

// Build assigns an id, owner, and creation time.
func (n NewWorkout) Build(userID string, now time.Time) Workout {
	return Workout{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      n.Name,
		Type:      n.Type,
		Duration:  n.Duration,
		Date:      n.Date,
		CreatedAt: Timestamp(now),
	}
}

func (w Workout) OwnerID() string { return w.UserID }
