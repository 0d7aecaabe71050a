// ABOUTME: CLI command showing today's totals against the daily goals.
// ABOUTME: Also prints the per-type workout breakdown.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const barWidth = 20

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}

		s := healthStore.Stats()
		bold := color.New(color.Bold)
		bold.Printf("Today (%s)\n", healthStore.Today())
		fmt.Printf("  %s %s %d / %d\n", padRight("Steps", 10), progressBar(s.StepsProgress()), s.TotalSteps, s.StepsGoal)
		fmt.Printf("  %s %s %d / %d ml\n", padRight("Water", 10), progressBar(s.WaterProgress()), s.TotalWaterIntake, s.WaterGoal)
		fmt.Printf("  %s %s %d / %d\n", padRight("Workouts", 10), progressBar(s.WorkoutsProgress()), s.TotalWorkouts, s.WorkoutsGoal)
		fmt.Printf("  %s %d\n", padRight("Activities", 10), s.TotalActivities)

		breakdown := healthStore.WorkoutTypeBreakdown()
		if len(breakdown) > 0 {
			fmt.Println()
			bold.Println("Workouts by type")
			for _, tc := range breakdown {
				fmt.Printf("  %s %d\n", padRight(string(tc.Type), 12), tc.Count)
			}
		}
		return nil
	},
}

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if pct >= 100 {
		return color.GreenString(bar)
	}
	return bar
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
