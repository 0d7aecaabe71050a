// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and shares the session with the CLI:
log in with 'healthlog login' first, or use the login tool.

The badger backend allows one process at a time, so CLI commands fail
while the server runs. Use --backend sqlite or postgres to run both.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "healthlog": {
        "command": "healthlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  signup, login, logout, whoami
  add_workout, list_workouts, delete_workout
  add_water, add_steps
  add_activity, list_activities, delete_activity
  get_stats

AVAILABLE RESOURCES:

  health://stats/today   Today's totals against goals
  health://workouts      All workouts
  health://activities    All activities`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(authStore, healthStore, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
