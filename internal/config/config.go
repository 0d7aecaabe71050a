// ABOUTME: healthlog configuration management with backend selection.
// ABOUTME: Handles settings, the storage backend factory, and the password hasher factory.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/healthlog/internal/auth"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/logging"
)

// Backend names accepted in config and on the command line.
const (
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendCharm    = "charm"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Password schemes.
const (
	SchemePlain    = "plain"
	SchemeArgon2id = "argon2id"
)

// Backends lists every supported backend name.
var Backends = []string{BackendBadger, BackendSQLite, BackendCharm, BackendPostgres, BackendMemory}

// Config stores healthlog configuration.
type Config struct {
	// Backend selects the storage backend. Defaults to "badger".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local backends.
	// Badger keeps its files in badger/, SQLite uses healthlog.db.
	// Supports ~ expansion. Defaults to ~/.local/share/healthlog.
	DataDir string `json:"data_dir,omitempty"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `json:"postgres_dsn,omitempty"`

	// CharmHost overrides the charm server for the charm backend.
	CharmHost string `json:"charm_host,omitempty"`

	// PasswordScheme is "plain" (default) or "argon2id".
	PasswordScheme string `json:"password_scheme,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendBadger
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetPasswordScheme returns the configured scheme, defaulting to "plain".
func (c *Config) GetPasswordScheme() string {
	if c.PasswordScheme == "" {
		return SchemePlain
	}
	return c.PasswordScheme
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return logging.DefaultLevel
	}
	return c.LogLevel
}

// DataDir returns the default data directory under $XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "healthlog")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates the kv.Store for the configured backend.
func (c *Config) OpenStore(ctx context.Context) (kv.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendBadger:
		return kv.OpenBadger(filepath.Join(dataDir, "badger"))
	case BackendSQLite:
		return kv.OpenSQLite(filepath.Join(dataDir, "healthlog.db"))
	case BackendCharm:
		return kv.OpenCharm(kv.DefaultCharmDB, c.CharmHost)
	case BackendPostgres:
		return kv.OpenPostgres(ctx, c.PostgresDSN)
	case BackendMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// NewHasher returns a hasher that writes the configured scheme and
// verifies passwords stored under either scheme.
func (c *Config) NewHasher() (auth.PasswordHasher, error) {
	switch scheme := c.GetPasswordScheme(); scheme {
	case SchemePlain:
		return auth.NewMixed(auth.PlainText{}), nil
	case SchemeArgon2id:
		return auth.NewMixed(auth.NewArgon2()), nil
	default:
		return nil, fmt.Errorf("unknown password scheme: %q", scheme)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthlog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
