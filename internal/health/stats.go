// ABOUTME: Daily statistics derived from the in-memory records.
// ABOUTME: Nothing here is persisted; every call recomputes from current state.
package health

import "github.com/harperreed/healthlog/internal/models"

// Stats summarises today's records against the fixed goals.
func (s *Store) Stats() models.HealthStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	stats := models.HealthStats{
		StepsGoal:    models.StepsGoal,
		WaterGoal:    models.WaterGoal,
		WorkoutsGoal: models.WorkoutsGoal,
	}

	for _, sc := range s.steps {
		if sc.Date == today {
			stats.TotalSteps = sc.Steps
			break
		}
	}
	for _, w := range s.water {
		if w.Date == today {
			stats.TotalWaterIntake += w.Amount
		}
	}
	for _, w := range s.workouts {
		if w.Date == today {
			stats.TotalWorkouts++
		}
	}
	for _, a := range s.activities {
		if a.Date == today {
			stats.TotalActivities++
		}
	}

	return stats
}

// WorkoutTypeBreakdown counts all workouts by type, in first-seen order.
func (s *Store) WorkoutTypeBreakdown() []models.TypeCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TypeCount
	index := make(map[models.WorkoutType]int)
	for _, w := range s.workouts {
		if i, ok := index[w.Type]; ok {
			out[i].Count++
			continue
		}
		index[w.Type] = len(out)
		out = append(out, models.TypeCount{Type: w.Type, Count: 1})
	}
	return out
}
