// ABOUTME: Data migration between key-value backends.
// ABOUTME: Copies every known record key from source to destination.

package kv

import (
	"errors"
	"fmt"
)

// MigrateSummary lists the keys that were copied and skipped.
type MigrateSummary struct {
	Copied  []string
	Skipped []string
}

// batchSyncer is a Store that syncs remotely after each write unless told not to.
type batchSyncer interface {
	SetAutoSync(enabled bool)
	Sync() error
}

var _ batchSyncer = (*Charm)(nil)

// Migrate copies every record in AllKeys from src to dst, overwriting
// whatever dst holds under those keys. Keys absent in src are skipped
// and left untouched in dst. A syncing dst is synced once at the end
// instead of after every key.
func Migrate(src, dst Store) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	if bs, ok := dst.(batchSyncer); ok {
		bs.SetAutoSync(false)
		defer bs.SetAutoSync(true)
	}

	for _, key := range AllKeys {
		value, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			summary.Skipped = append(summary.Skipped, key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}

		if err := dst.Set(key, value); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
	}

	if bs, ok := dst.(batchSyncer); ok {
		if err := bs.Sync(); err != nil {
			return nil, fmt.Errorf("sync destination: %w", err)
		}
	}
	return summary, nil
}

// HasData reports whether store holds any of the known record keys.
func HasData(store Store) (bool, error) {
	for _, key := range AllKeys {
		_, err := store.Get(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("read %s: %w", key, err)
		}
		return true, nil
	}
	return false, nil
}
