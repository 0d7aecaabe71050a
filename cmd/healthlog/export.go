// ABOUTME: CLI commands for exporting and importing health data.
// ABOUTME: Supports JSON and YAML export of the logged-in user's records.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export health data",
	Long: `Export the logged-in user's workouts, water, steps, and activities.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export (human-readable)

EXAMPLES:

  healthlog export json                  # Export as JSON to stdout
  healthlog export json -o backup.json   # Save to file
  healthlog export yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}

		exported, err := storage.NewCollections(store).Export(*u, time.Now())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format := args[0]; format {
		case "json":
			data, err = storage.ExportJSON(exported)
		case "yaml":
			data, err = storage.ExportYAML(exported)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Println(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import health data from JSON or YAML",
	Long: `Import records from a previous export into the logged-in user's data.

Imported records become owned by the logged-in user. Records whose ID
already exists are skipped. Step counts for a day that already has a
record are added onto it. Importing the same file twice adds nothing.

EXAMPLES:

  healthlog import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}

		filename := args[0]
		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data, err := storage.ParseExport(raw)
		if err != nil {
			return err
		}

		summary, err := storage.NewCollections(store).Import(u.ID, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Workouts:   %d\n", summary.Workouts)
		fmt.Printf("  Water:      %d\n", summary.WaterIntakes)
		fmt.Printf("  Steps:      %d\n", summary.StepCounts)
		fmt.Printf("  Activities: %d\n", summary.Activities)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
