// ABOUTME: Export and import of one user's health records.
// ABOUTME: Supports JSON and YAML; import re-owns records and keeps one step record per day.
package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// Collections groups the four per-user record collections of a store.
type Collections struct {
	Workouts   *Collection[models.Workout]
	Water      *Collection[models.WaterIntake]
	Steps      *Collection[models.StepCount]
	Activities *Collection[models.Activity]
}

// NewCollections binds the four collections to their keys in store.
func NewCollections(store kv.Store) *Collections {
	return &Collections{
		Workouts:   NewCollection[models.Workout](store, kv.WorkoutsKey),
		Water:      NewCollection[models.WaterIntake](store, kv.WaterKey),
		Steps:      NewCollection[models.StepCount](store, kv.StepsKey),
		Activities: NewCollection[models.Activity](store, kv.ActivitiesKey),
	}
}

// ExportData is the full export format for one user.
type ExportData struct {
	Version      string               `json:"version" yaml:"version"`
	ExportedAt   time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool         string               `json:"tool" yaml:"tool"`
	User         models.User          `json:"user" yaml:"user"`
	Workouts     []models.Workout     `json:"workouts" yaml:"workouts"`
	WaterIntakes []models.WaterIntake `json:"water_intakes" yaml:"water_intakes"`
	StepCounts   []models.StepCount   `json:"step_counts" yaml:"step_counts"`
	Activities   []models.Activity    `json:"activities" yaml:"activities"`
}

// ImportSummary holds counts of imported records.
type ImportSummary struct {
	Workouts     int
	WaterIntakes int
	StepCounts   int
	Activities   int
}

// Export collects every record owned by user.
func (c *Collections) Export(user models.User, now time.Time) (*ExportData, error) {
	workouts, err := c.Workouts.LoadForOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	water, err := c.Water.LoadForOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list water intakes: %w", err)
	}
	steps, err := c.Steps.LoadForOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list step counts: %w", err)
	}
	activities, err := c.Activities.LoadForOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return &ExportData{
		Version:      ExportVersion,
		ExportedAt:   now.UTC(),
		Tool:         "healthlog",
		User:         user,
		Workouts:     workouts,
		WaterIntakes: water,
		StepCounts:   steps,
		Activities:   activities,
	}, nil
}

// Import adds the records in data to ownerID's collections. Records are
// re-owned to ownerID, ids already present are skipped, and imported step
// counts are added onto an existing record for the same day. That record
// keeps the imported id, so importing the same document again adds nothing.
func (c *Collections) Import(ownerID string, data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	workouts, err := c.Workouts.LoadForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for _, w := range data.Workouts {
		if containsID(workouts, w.ID, func(x models.Workout) string { return x.ID }) {
			continue
		}
		w.UserID = ownerID
		workouts = append(workouts, w)
		summary.Workouts++
	}
	if err := c.Workouts.SaveMerge(ownerID, workouts); err != nil {
		return nil, fmt.Errorf("import workouts: %w", err)
	}

	water, err := c.Water.LoadForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for _, w := range data.WaterIntakes {
		if containsID(water, w.ID, func(x models.WaterIntake) string { return x.ID }) {
			continue
		}
		w.UserID = ownerID
		water = append(water, w)
		summary.WaterIntakes++
	}
	if err := c.Water.SaveMerge(ownerID, water); err != nil {
		return nil, fmt.Errorf("import water intakes: %w", err)
	}

	steps, err := c.Steps.LoadForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for _, s := range data.StepCounts {
		if stepsSeen(steps, s.ID) {
			continue
		}
		s.UserID = ownerID
		steps = mergeImportedSteps(steps, s)
		summary.StepCounts++
	}
	if err := c.Steps.SaveMerge(ownerID, steps); err != nil {
		return nil, fmt.Errorf("import step counts: %w", err)
	}

	activities, err := c.Activities.LoadForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	for _, a := range data.Activities {
		if containsID(activities, a.ID, func(x models.Activity) string { return x.ID }) {
			continue
		}
		a.UserID = ownerID
		activities = append(activities, a)
		summary.Activities++
	}
	if err := c.Activities.SaveMerge(ownerID, activities); err != nil {
		return nil, fmt.Errorf("import activities: %w", err)
	}

	return summary, nil
}

// MergeSteps adds rec onto the record with the same date, or appends it.
// The input slice is not modified.
func MergeSteps(steps []models.StepCount, rec models.StepCount) []models.StepCount {
	out := make([]models.StepCount, len(steps), len(steps)+1)
	copy(out, steps)
	for i := range out {
		if out[i].Date == rec.Date {
			out[i].Steps += rec.Steps
			return out
		}
	}
	return append(out, rec)
}

// mergeImportedSteps is MergeSteps that also remembers rec's id on the
// record it was added into, so a repeated import skips it.
func mergeImportedSteps(steps []models.StepCount, rec models.StepCount) []models.StepCount {
	for i := range steps {
		if steps[i].Date != rec.Date {
			continue
		}
		out := slices.Clone(steps)
		out[i].Steps += rec.Steps
		out[i].ImportedIDs = append(slices.Clone(out[i].ImportedIDs), rec.ID)
		out[i].ImportedIDs = append(out[i].ImportedIDs, rec.ImportedIDs...)
		return out
	}
	return append(slices.Clone(steps), rec)
}

// stepsSeen reports whether id is a step record or was already added into one.
func stepsSeen(steps []models.StepCount, id string) bool {
	for _, s := range steps {
		if s.ID == id || slices.Contains(s.ImportedIDs, id) {
			return true
		}
	}
	return false
}

func containsID[T any](items []T, id string, idOf func(T) string) bool {
	for _, item := range items {
		if idOf(item) == id {
			return true
		}
	}
	return false
}

// ExportJSON encodes data as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML encodes data as YAML.
func ExportYAML(data *ExportData) ([]byte, error) {
	return yaml.Marshal(data)
}

// ParseExport decodes a JSON or YAML export document.
func ParseExport(raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		data = ExportData{}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("parse export: %w", err)
		}
	}
	if data.Version == "" {
		return nil, fmt.Errorf("parse export: missing version")
	}
	return &data, nil
}
