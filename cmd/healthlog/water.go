// ABOUTME: CLI commands for water intake and step counts.
// ABOUTME: Water logs one record per drink; steps add onto today's total.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Log water in millilitres",
	Long: `Log a drink of water for today. Every call adds a separate record.

Examples:
  healthlog water add 250
  healthlog water add 500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		amount, err := positiveInt(args[0], "amount")
		if err != nil {
			return err
		}

		if _, err := healthStore.AddWaterIntake(amount); err != nil {
			return fmt.Errorf("failed to add water: %w", err)
		}

		stats := healthStore.Stats()
		color.Green("✓ Added %d ml water", amount)
		fmt.Printf("  today %d / %d ml\n", stats.TotalWaterIntake, stats.WaterGoal)
		return nil
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Log steps",
}

var stepsAddCmd = &cobra.Command{
	Use:   "add <steps>",
	Short: "Add steps to today's total",
	Long: `Add steps to today's step count. Repeated calls on the same day add up.

Examples:
  healthlog steps add 3000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		steps, err := positiveInt(args[0], "steps")
		if err != nil {
			return err
		}

		rec, err := healthStore.AddSteps(steps)
		if err != nil {
			return fmt.Errorf("failed to add steps: %w", err)
		}

		color.Green("✓ Added %d steps", steps)
		fmt.Printf("  today %d / %d steps\n", rec.Steps, models.StepsGoal)
		return nil
	},
}

func positiveInt(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", what, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", what)
	}
	return n, nil
}

func init() {
	waterCmd.AddCommand(waterAddCmd)
	stepsCmd.AddCommand(stepsAddCmd)
	rootCmd.AddCommand(waterCmd, stepsCmd)
}
