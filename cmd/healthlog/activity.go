// ABOUTME: CLI commands for free-form activities.
// ABOUTME: Supports add, list, and delete subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	activityDescription string
	activityDuration    int
	activityDate        string
	activityLimit       int
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"act"},
	Short:   "Manage activities",
}

var activityAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an activity",
	Long: `Add a free-form activity. The date defaults to today (UTC).

Examples:
  healthlog activity add Gardening --duration 45
  healthlog activity add Walk -d 20 --description "with the dog"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if activityDuration <= 0 {
			return fmt.Errorf("duration must be a positive number of minutes")
		}
		date, err := parseDate(activityDate, healthStore.Today())
		if err != nil {
			return err
		}

		a, err := healthStore.AddActivity(models.NewActivity{
			Name:        args[0],
			Description: activityDescription,
			Duration:    activityDuration,
			Date:        date,
		})
		if err != nil {
			return fmt.Errorf("failed to add activity: %w", err)
		}

		color.Green("✓ Added activity %s", a.Name)
		fmt.Printf("  %s %s %d min\n",
			color.New(color.Faint).Sprint(shortID(a.ID)), a.Date, a.Duration)
		return nil
	},
}

var activityListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}

		activities := healthStore.Activities()
		if len(activities) == 0 {
			fmt.Println("No activities found.")
			return nil
		}

		faint := color.New(color.Faint)
		shown := 0
		for i := len(activities) - 1; i >= 0; i-- {
			if activityLimit > 0 && shown >= activityLimit {
				break
			}
			a := activities[i]
			desc := ""
			if a.Description != "" {
				desc = faint.Sprintf(" (%s)", truncate(a.Description, 30))
			}
			fmt.Printf("%s %s %s %d min%s\n",
				faint.Sprint(shortID(a.ID)),
				faint.Sprint(a.Date),
				padRight(truncate(a.Name, 24), 24),
				a.Duration,
				desc)
			shown++
		}
		return nil
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an activity",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}

		activities := healthStore.Activities()
		ids := make([]string, len(activities))
		for i, a := range activities {
			ids[i] = a.ID
		}
		id, err := resolveID(args[0], ids)
		if err != nil {
			return fmt.Errorf("activity %w", err)
		}

		if err := healthStore.DeleteActivity(id); err != nil {
			return fmt.Errorf("failed to delete activity: %w", err)
		}
		color.Yellow("✗ Deleted activity %s", shortID(id))
		return nil
	},
}

func init() {
	activityAddCmd.Flags().StringVar(&activityDescription, "description", "", "optional description")
	activityAddCmd.Flags().IntVarP(&activityDuration, "duration", "d", 0, "duration in minutes")
	activityAddCmd.Flags().StringVar(&activityDate, "date", "", "date (YYYY-MM-DD, default today)")
	activityListCmd.Flags().IntVarP(&activityLimit, "limit", "n", 20, "max number of results")

	activityCmd.AddCommand(activityAddCmd, activityListCmd, activityDeleteCmd)
	rootCmd.AddCommand(activityCmd)
}
