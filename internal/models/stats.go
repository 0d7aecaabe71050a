// ABOUTME: Daily health statistics and fixed goal constants.
// ABOUTME: Progress helpers report percent of goal, capped at 100.
package models

// Daily goals.
const (
	StepsGoal    = 10000
	WaterGoal    = 2000
	WorkoutsGoal = 1
)

// HealthStats summarises one user's records for today.
type HealthStats struct {
	TotalSteps       int `json:"totalSteps"`
	TotalWorkouts    int `json:"totalWorkouts"`
	TotalWaterIntake int `json:"totalWaterIntake"`
	TotalActivities  int `json:"totalActivities"`
	StepsGoal        int `json:"stepsGoal"`
	WaterGoal        int `json:"waterGoal"`
	WorkoutsGoal     int `json:"workoutsGoal"`
}

func (s HealthStats) StepsProgress() float64 {
	return progress(s.TotalSteps, s.StepsGoal)
}

func (s HealthStats) WaterProgress() float64 {
	return progress(s.TotalWaterIntake, s.WaterGoal)
}

func (s HealthStats) WorkoutsProgress() float64 {
	return progress(s.TotalWorkouts, s.WorkoutsGoal)
}

func progress(value, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	p := float64(value) / float64(goal) * 100
	if p > 100 {
		return 100
	}
	return p
}

// TypeCount is the number of workouts of one type.
type TypeCount struct {
	Type  WorkoutType `json:"type"`
	Count int         `json:"count"`
}
