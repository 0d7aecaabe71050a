// ABOUTME: Charm KV Store with automatic cloud sync after each write.
// ABOUTME: Falls back to read-only mode when another process holds the lock.
package kv

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// DefaultCharmDB is the charm KV database name.
	DefaultCharmDB = "healthlog"
	// DefaultCharmHost is the charm server used when none is configured.
	DefaultCharmHost = "charm.2389.dev"
)

// ErrReadOnly is returned by writes when the database is locked by another process.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// Charm wraps a charm KV database.
type Charm struct {
	kv       *charmkv.KV
	autoSync bool
	mu       sync.RWMutex
}

var _ Store = (*Charm)(nil)

// OpenCharm opens the named charm KV database against host and pulls
// remote changes once unless the database is read-only.
func OpenCharm(name, host string) (*Charm, error) {
	if name == "" {
		name = DefaultCharmDB
	}
	if host == "" {
		host = DefaultCharmHost
	}
	// CHARM_HOST must be set before the KV is opened
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, err
	}

	db, err := charmkv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &Charm{kv: db, autoSync: true}
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// IsReadOnly reports whether another process holds the database lock.
func (c *Charm) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// SetAutoSync enables or disables sync after writes.
func (c *Charm) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// Sync synchronizes local state with the charm server.
func (c *Charm) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// ID returns the charm account id of the linked user.
func (c *Charm) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

func (c *Charm) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

func (c *Charm) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (c *Charm) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

func (c *Charm) Remove(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

func (c *Charm) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}
