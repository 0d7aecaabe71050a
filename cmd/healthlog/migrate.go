// ABOUTME: CLI command for copying all data to another storage backend.
// ABOUTME: Moves every account, session, and record between backends.
package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/config"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateToDir  string
	migrateForce  bool
	migrateDryRun bool
	migrateSave   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy all data to another storage backend",
	Long: `Copy every account, the session, and all records from the current backend
to another one.

The source is the backend selected by config or --backend. The destination
uses the same data directory unless --to-data-dir is given.

IMPORTANT:

  - The destination must be empty unless --force is given
  - With --force, destination records are overwritten
  - Run with --dry-run first to see what would be copied

USAGE:

  healthlog migrate --to sqlite --dry-run
  healthlog migrate --to sqlite
  healthlog migrate --to postgres --save   # also make postgres the default`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(config.Backends, migrateTo) {
			return fmt.Errorf("unknown backend: %q", migrateTo)
		}

		dstCfg := *cfg
		dstCfg.Backend = migrateTo
		if migrateToDir != "" {
			dstCfg.DataDir = migrateToDir
		}
		if dstCfg.GetBackend() == cfg.GetBackend() && dstCfg.GetDataDir() == cfg.GetDataDir() {
			return fmt.Errorf("source and destination are the same (%s at %s)", cfg.GetBackend(), cfg.GetDataDir())
		}

		dst, err := dstCfg.OpenStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer func() { _ = dst.Close() }()

		hasData, err := kv.HasData(dst)
		if err != nil {
			return err
		}
		if hasData && !migrateForce {
			return fmt.Errorf("destination %s already has data (use --force to overwrite)", migrateTo)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			for _, key := range kv.AllKeys {
				if _, err := store.Get(key); err == nil {
					fmt.Printf("  would copy %s\n", key)
				}
			}
			return nil
		}

		summary, err := kv.Migrate(store, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrated", "from", cfg.GetBackend(), "to", migrateTo, "copied", len(summary.Copied))

		color.Green("✓ Migrated %s → %s", cfg.GetBackend(), migrateTo)
		for _, key := range summary.Copied {
			fmt.Printf("  copied %s\n", key)
		}

		if migrateSave {
			saved, err := config.Load()
			if err != nil {
				return err
			}
			saved.Backend = dstCfg.Backend
			saved.DataDir = dstCfg.DataDir
			if err := saved.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("  default backend is now %s\n", migrateTo)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (badger, sqlite, charm, postgres)")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-data-dir", "", "destination data directory (default: same as source)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data in the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateSave, "save", false, "save the destination as the default backend")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
