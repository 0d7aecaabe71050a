// ABOUTME: CLI commands for Charm-based sync when the charm backend is active.
// ABOUTME: Supports link, unlink, status, now, repair, reset, and wipe operations.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/spf13/cobra"
)

var errNotCharm = errors.New("sync needs the charm backend (use --backend charm or set \"backend\": \"charm\" in config)")

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync health data across devices",
	Long: `Sync health data across devices using Charm Cloud.

Only available with the charm backend. Data is E2E encrypted with your SSH
key before upload, and writes sync automatically.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  now         Pull and push changes immediately
  repair      Repair local database corruption
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharmCLI("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Run 'healthlog sync now' to pull existing data.")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect from Charm",
	Annotations: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharmCLI("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local health data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmStore()
		if err != nil {
			return err
		}

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'healthlog sync link' to connect to Charm.")
			return nil
		}

		fmt.Println("Charm ID:", id)
		if client.IsReadOnly() {
			color.Yellow("⚠ Database is read-only (another process holds the lock)")
		}

		users, err := authStore.Users()
		if err != nil {
			return err
		}
		color.Green("✓ Connected to Charm")
		fmt.Printf("  Accounts: %d\n", len(users))
		if _, err := requireUser(); err == nil {
			fmt.Printf("  Workouts: %d\n", len(healthStore.Workouts()))
			fmt.Printf("  Activities: %d\n", len(healthStore.Activities()))
		}
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmStore()
		if err != nil {
			return err
		}
		if err := client.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Sync complete")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete all cloud and local data",
	Annotations: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE all cloud backups and local health data.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := charmkv.Wipe(kv.DefaultCharmDB)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair database corruption",
	Annotations: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing healthlog charm database...")
		result, err := charmkv.Repair(kv.DefaultCharmDB, force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local data and restore from cloud",
	Annotations: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will DELETE all local health data and restore from cloud.")
		fmt.Print("Continue? [y/N]: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Canceled.")
			return nil
		}

		if err := charmkv.Reset(kv.DefaultCharmDB); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

// charmStore returns the open store as a charm client.
func charmStore() (*kv.Charm, error) {
	client, ok := store.(*kv.Charm)
	if !ok {
		return nil, errNotCharm
	}
	return client, nil
}

func runCharmCLI(arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = os.Stdout
	charmCmd.Stderr = os.Stderr
	return charmCmd.Run()
}

func init() {
	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncNowCmd, syncRepairCmd, syncResetCmd, syncWipeCmd)
	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")
	rootCmd.AddCommand(syncCmd)
}
