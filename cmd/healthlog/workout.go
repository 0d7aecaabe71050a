// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutType     string
	workoutListType string
	workoutDuration int
	workoutDate     string
	workoutLimit    int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workouts for the logged-in user.

COMMANDS:

  add      Log a workout
  list     List workouts, newest first
  delete   Delete a workout by ID or ID prefix

WORKOUT TYPES:

  cardio, strength, flexibility, sports, other`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a workout",
	Long: `Add a workout. The date defaults to today (UTC).

Examples:
  healthlog workout add "Morning run" --type cardio --duration 30
  healthlog workout add "Leg day" -t strength -d 60 --date 2025-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if !models.IsValidWorkoutType(workoutType) {
			return fmt.Errorf("unknown workout type: %s\nValid types: %s", workoutType, workoutTypeList())
		}
		if workoutDuration <= 0 {
			return fmt.Errorf("duration must be a positive number of minutes")
		}
		date, err := parseDate(workoutDate, healthStore.Today())
		if err != nil {
			return err
		}

		w, err := healthStore.AddWorkout(models.NewWorkout{
			Name:     args[0],
			Type:     models.WorkoutType(workoutType),
			Duration: workoutDuration,
			Date:     date,
		})
		if err != nil {
			return fmt.Errorf("failed to add workout: %w", err)
		}

		color.Green("✓ Added %s workout", w.Type)
		fmt.Printf("  %s %s %s %d min\n",
			color.New(color.Faint).Sprint(shortID(w.ID)),
			w.Date, w.Name, w.Duration)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if workoutListType != "" && !models.IsValidWorkoutType(workoutListType) {
			return fmt.Errorf("unknown workout type: %s", workoutListType)
		}

		workouts := healthStore.Workouts()
		faint := color.New(color.Faint)
		shown := 0
		for i := len(workouts) - 1; i >= 0; i-- {
			if workoutLimit > 0 && shown >= workoutLimit {
				break
			}
			w := workouts[i]
			if workoutListType != "" && string(w.Type) != workoutListType {
				continue
			}
			fmt.Printf("%s %s %s %s %d min\n",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(w.Date),
				padRight(string(w.Type), 12),
				padRight(truncate(w.Name, 30), 30),
				w.Duration)
			shown++
		}

		if shown == 0 {
			fmt.Println("No workouts found.")
		}
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}

		workouts := healthStore.Workouts()
		ids := make([]string, len(workouts))
		for i, w := range workouts {
			ids[i] = w.ID
		}
		id, err := resolveID(args[0], ids)
		if err != nil {
			return fmt.Errorf("workout %w", err)
		}

		if err := healthStore.DeleteWorkout(id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		color.Yellow("✗ Deleted workout %s", shortID(id))
		return nil
	},
}

func workoutTypeList() string {
	names := make([]string, len(models.AllWorkoutTypes))
	for i, t := range models.AllWorkoutTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutType, "type", "t", string(models.WorkoutOther), "workout type")
	workoutAddCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "date (YYYY-MM-DD, default today)")

	workoutListCmd.Flags().StringVarP(&workoutListType, "type", "t", "", "filter by workout type")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
