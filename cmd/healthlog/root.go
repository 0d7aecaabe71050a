// ABOUTME: Root Cobra command for healthlog CLI.
// ABOUTME: Opens config, logger, storage, and both stores via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/auth"
	"github.com/harperreed/healthlog/internal/config"
	"github.com/harperreed/healthlog/internal/health"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in (run 'healthlog login' or 'healthlog signup')")

var (
	backendFlag  string
	dataDirFlag  string
	logLevelFlag string

	cfg         *config.Config
	logger      *log.Logger
	store       kv.Store
	authStore   *auth.Store
	healthStore *health.Store
)

var rootCmd = &cobra.Command{
	Use:           "healthlog",
	Short:         "Personal health tracker",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `healthlog is a CLI tool for tracking workouts, water, steps, and activities.

WHAT IT TRACKS:

  Workouts     name, type (cardio, strength, flexibility, sports, other), minutes
  Water        millilitres, one record per drink
  Steps        one running total per day
  Activities   free-form name, description, and minutes

QUICK START:

  $ healthlog signup ann@example.com Ann       # Create an account (prompts for password)
  $ healthlog workout add "Morning run" --type cardio --duration 30
  $ healthlog water add 250                    # Log a glass of water
  $ healthlog steps add 4200                   # Add to today's steps
  $ healthlog stats                            # Today's totals against goals

DAILY GOALS:

  10000 steps, 2000 ml water, 1 workout.

STORAGE:

  Data lives in one data directory, shared by every account on this machine.
  Choose a backend with --backend or the config file:

    badger     embedded key-value store, one process at a time (default)
    sqlite     single-file SQLite database
    charm      Charm KV with cloud sync
    postgres   PostgreSQL (set postgres_dsn in config)
    memory     nothing persisted

  Config file: ~/.config/healthlog/config.json

MCP INTEGRATION:

  Run 'healthlog mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "healthlog": { "command": "healthlog", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsStore(cmd) {
			return nil
		}
		return openRuntime(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (badger, sqlite, charm, postgres, memory)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/healthlog)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
}

// skipStoreAnnotation marks commands that run without opening storage.
const skipStoreAnnotation = "healthlog/skip-store"

// needsStore reports whether cmd works on stored data.
func needsStore(cmd *cobra.Command) bool {
	if cmd.Annotations[skipStoreAnnotation] == "true" {
		return false
	}
	switch cmd.Name() {
	case "help", "completion":
		return false
	}
	return cmd.Runnable()
}

var skipStore = map[string]string{skipStoreAnnotation: "true"}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		c.Backend = backendFlag
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if logLevelFlag != "" {
		c.LogLevel = logLevelFlag
	}
	return c, nil
}

func openRuntime(cmd *cobra.Command) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger, err = logging.New(os.Stderr, cfg.GetLogLevel())
	if err != nil {
		return err
	}

	hasher, err := cfg.NewHasher()
	if err != nil {
		return err
	}

	store, err = cfg.OpenStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	logger.Debug("opened storage", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	authStore = auth.NewStore(store, auth.WithHasher(hasher), auth.WithLogger(logger))
	authStore.RestoreSession()

	userID := ""
	if u := authStore.User(); u != nil {
		userID = u.ID
	}
	healthStore, err = health.NewStore(store, userID, health.WithLogger(logger))
	if err != nil {
		_ = closeRuntime()
		return fmt.Errorf("failed to load health data: %w", err)
	}
	return nil
}

func closeRuntime() error {
	authStore = nil
	healthStore = nil
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// requireUser returns the session user or errNotLoggedIn.
func requireUser() (*models.User, error) {
	if authStore == nil {
		return nil, errNotLoggedIn
	}
	u := authStore.User()
	if u == nil {
		return nil, errNotLoggedIn
	}
	return u, nil
}
