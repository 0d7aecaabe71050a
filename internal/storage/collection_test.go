// ABOUTME: Tests for the generic per-owner Collection.
// ABOUTME: Covers owner filtering, save-merge isolation, and ordering.
package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
)

func workoutFor(userID, name string) models.Workout {
	return models.NewWorkout{Name: name, Type: models.WorkoutCardio, Duration: 30, Date: "2025-03-01"}.
		Build(userID, time.Now())
}

func names(ws []models.Workout) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.Name)
	}
	return out
}

func TestLoadForOwnerEmptyStore(t *testing.T) {
	c := NewCollection[models.Workout](kv.NewMemory(), kv.WorkoutsKey)

	got, err := c.LoadForOwner("u1")
	if err != nil {
		t.Fatalf("LoadForOwner failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestLoadForOwnerFilters(t *testing.T) {
	store := kv.NewMemory()
	c := NewCollection[models.Workout](store, kv.WorkoutsKey)

	all := []models.Workout{workoutFor("a", "a1"), workoutFor("b", "b1"), workoutFor("a", "a2")}
	data, _ := json.Marshal(all)
	_ = store.Set(kv.WorkoutsKey, data)

	got, err := c.LoadForOwner("a")
	if err != nil {
		t.Fatalf("LoadForOwner failed: %v", err)
	}
	if n := names(got); len(n) != 2 || n[0] != "a1" || n[1] != "a2" {
		t.Errorf("LoadForOwner(a) = %v, want [a1 a2]", n)
	}
}

func TestSaveMergeKeepsOtherUsers(t *testing.T) {
	store := kv.NewMemory()
	c := NewCollection[models.Workout](store, kv.WorkoutsKey)

	bWorkouts := []models.Workout{workoutFor("b", "b1"), workoutFor("b", "b2")}
	if err := c.SaveMerge("b", bWorkouts); err != nil {
		t.Fatalf("SaveMerge(b) failed: %v", err)
	}

	var aWorkouts []models.Workout
	for _, n := range []string{"a1", "a2", "a3"} {
		aWorkouts = append(aWorkouts, workoutFor("a", n))
		if err := c.SaveMerge("a", aWorkouts); err != nil {
			t.Fatalf("SaveMerge(a) failed: %v", err)
		}
	}

	all, err := c.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 persisted workouts, got %d", len(all))
	}

	gotB, _ := c.LoadForOwner("b")
	if len(gotB) != 2 || gotB[0].ID != bWorkouts[0].ID || gotB[1].ID != bWorkouts[1].ID {
		t.Errorf("b's workouts changed: %+v", gotB)
	}
}

func TestSaveMergeOrdering(t *testing.T) {
	store := kv.NewMemory()
	c := NewCollection[models.Workout](store, kv.WorkoutsKey)

	_ = c.SaveMerge("a", []models.Workout{workoutFor("a", "a1")})
	_ = c.SaveMerge("b", []models.Workout{workoutFor("b", "b1")})
	// a writes again: a's slice moves behind b's
	_ = c.SaveMerge("a", []models.Workout{workoutFor("a", "a1"), workoutFor("a", "a2")})

	all, _ := c.LoadAll()
	want := []string{"b1", "a1", "a2"}
	got := names(all)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order = %v, want %v", got, want)
			break
		}
	}
}

func TestSaveMergeEmptyRemovesOwner(t *testing.T) {
	store := kv.NewMemory()
	c := NewCollection[models.Workout](store, kv.WorkoutsKey)

	_ = c.SaveMerge("a", []models.Workout{workoutFor("a", "a1")})
	if err := c.SaveMerge("a", nil); err != nil {
		t.Fatalf("SaveMerge failed: %v", err)
	}

	raw, err := store.Get(kv.WorkoutsKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("persisted = %s, want []", raw)
	}
}

func TestLoadAllMalformed(t *testing.T) {
	store := kv.NewMemory()
	_ = store.Set(kv.WaterKey, []byte("{not json"))
	c := NewCollection[models.WaterIntake](store, kv.WaterKey)

	if _, err := c.LoadAll(); err == nil {
		t.Error("expected decode error for malformed data")
	}
	if err := c.SaveMerge("a", nil); err == nil {
		t.Error("expected SaveMerge to surface decode error")
	}
}
