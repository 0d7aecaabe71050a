// ABOUTME: Health data store holding one user's workouts, water, steps, and activities.
// ABOUTME: Every mutation save-merges its collection so other users' records stay intact.
package health

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/storage"
)

// Store is the in-memory slice of one user's records plus the persisted
// collections they came from. With no user every collection is empty and
// every mutation is a no-op.
type Store struct {
	mu     sync.Mutex
	cols   *storage.Collections
	now    func() time.Time
	logger *log.Logger

	userID     string
	workouts   []models.Workout
	water      []models.WaterIntake
	steps      []models.StepCount
	activities []models.Activity
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for "today" and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a store for userID (empty for no user) and loads its records.
func NewStore(store kv.Store, userID string, opts ...Option) (*Store, error) {
	s := &Store{
		cols:   storage.NewCollections(store),
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.SetUser(userID); err != nil {
		return nil, err
	}
	return s, nil
}

// SetUser switches the active user and reloads all four collections.
func (s *Store) SetUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.workouts, s.water, s.steps, s.activities = nil, nil, nil, nil
	if userID == "" {
		return nil
	}

	var err error
	if s.workouts, err = s.cols.Workouts.LoadForOwner(userID); err != nil {
		return fmt.Errorf("load workouts: %w", err)
	}
	if s.water, err = s.cols.Water.LoadForOwner(userID); err != nil {
		return fmt.Errorf("load water intakes: %w", err)
	}
	if s.steps, err = s.cols.Steps.LoadForOwner(userID); err != nil {
		return fmt.Errorf("load step counts: %w", err)
	}
	if s.activities, err = s.cols.Activities.LoadForOwner(userID); err != nil {
		return fmt.Errorf("load activities: %w", err)
	}

	s.logger.Debug("loaded records", "user", userID,
		"workouts", len(s.workouts), "water", len(s.water),
		"steps", len(s.steps), "activities", len(s.activities))
	return nil
}

// UserID returns the active user id, or "" when there is none.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Today returns the current UTC calendar day by the store's clock.
func (s *Store) Today() string {
	return models.Day(s.now())
}

// AddWorkout records a workout for the active user and returns it.
func (s *Store) AddWorkout(w models.NewWorkout) (*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil, nil
	}

	rec := w.Build(s.userID, s.now())
	updated := append(slices.Clone(s.workouts), rec)
	if err := s.cols.Workouts.SaveMerge(s.userID, updated); err != nil {
		return nil, err
	}
	s.workouts = updated
	s.logger.Debug("added workout", "user", s.userID, "id", rec.ID)
	return &rec, nil
}

// DeleteWorkout removes the workout with id. Unknown ids leave the
// collection unchanged.
func (s *Store) DeleteWorkout(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil
	}

	updated := slices.DeleteFunc(slices.Clone(s.workouts), func(w models.Workout) bool { return w.ID == id })
	if err := s.cols.Workouts.SaveMerge(s.userID, updated); err != nil {
		return err
	}
	s.workouts = updated
	return nil
}

// AddWaterIntake logs amount millilitres for today. Every call creates a
// new record. Callers validate that amount is positive.
func (s *Store) AddWaterIntake(amount int) (*models.WaterIntake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil, nil
	}

	rec := models.NewWaterIntake(s.userID, amount, s.now())
	updated := append(slices.Clone(s.water), rec)
	if err := s.cols.Water.SaveMerge(s.userID, updated); err != nil {
		return nil, err
	}
	s.water = updated
	s.logger.Debug("added water", "user", s.userID, "amount", amount)
	return &rec, nil
}

// AddSteps adds steps onto today's record, creating it on the first call
// of the day. It returns today's record after the update.
func (s *Store) AddSteps(steps int) (*models.StepCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil, nil
	}

	updated := storage.MergeSteps(s.steps, models.NewStepCount(s.userID, steps, s.now()))
	if err := s.cols.Steps.SaveMerge(s.userID, updated); err != nil {
		return nil, err
	}
	s.steps = updated

	today := s.Today()
	for i := range s.steps {
		if s.steps[i].Date == today {
			rec := s.steps[i]
			s.logger.Debug("added steps", "user", s.userID, "steps", steps, "total", rec.Steps)
			return &rec, nil
		}
	}
	return nil, nil
}

// AddActivity records an activity for the active user and returns it.
func (s *Store) AddActivity(a models.NewActivity) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil, nil
	}

	rec := a.Build(s.userID, s.now())
	updated := append(slices.Clone(s.activities), rec)
	if err := s.cols.Activities.SaveMerge(s.userID, updated); err != nil {
		return nil, err
	}
	s.activities = updated
	s.logger.Debug("added activity", "user", s.userID, "id", rec.ID)
	return &rec, nil
}

// DeleteActivity removes the activity with id. Unknown ids leave the
// collection unchanged.
func (s *Store) DeleteActivity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil
	}

	updated := slices.DeleteFunc(slices.Clone(s.activities), func(a models.Activity) bool { return a.ID == id })
	if err := s.cols.Activities.SaveMerge(s.userID, updated); err != nil {
		return err
	}
	s.activities = updated
	return nil
}

// Workouts returns a copy of the active user's workouts.
func (s *Store) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.workouts)
}

// WaterIntakes returns a copy of the active user's water records.
func (s *Store) WaterIntakes() []models.WaterIntake {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.water)
}

// StepCounts returns a copy of the active user's step records.
func (s *Store) StepCounts() []models.StepCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.steps)
}

// Activities returns a copy of the active user's activities.
func (s *Store) Activities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activities)
}
