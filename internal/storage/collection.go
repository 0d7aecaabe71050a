// ABOUTME: Generic per-owner collection stored as one JSON list under a KV key.
// ABOUTME: SaveMerge replaces one owner's slice while keeping every other owner's records.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/models"
)

// Collection is a list of records for all users persisted under one key.
type Collection[T models.Owned] struct {
	store kv.Store
	key   string
}

// NewCollection binds a collection to key in store.
func NewCollection[T models.Owned](store kv.Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// LoadAll returns every persisted record. An absent key is an empty list.
func (c *Collection[T]) LoadAll() ([]T, error) {
	data, err := c.store.Get(c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// LoadForOwner returns the owner's records in persisted order.
func (c *Collection[T]) LoadForOwner(ownerID string) ([]T, error) {
	all, err := c.LoadAll()
	if err != nil {
		return nil, err
	}
	return filterOwner(all, ownerID, true), nil
}

// SaveMerge replaces ownerID's records with records. The persisted list
// becomes every other owner's records, in their existing order, followed
// by records.
func (c *Collection[T]) SaveMerge(ownerID string, records []T) error {
	all, err := c.LoadAll()
	if err != nil {
		return err
	}

	merged := filterOwner(all, ownerID, false)
	merged = append(merged, records...)

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// filterOwner keeps records whose owner equals ownerID when keep is true,
// and the complement otherwise. The result never aliases items.
func filterOwner[T models.Owned](items []T, ownerID string, keep bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if (item.OwnerID() == ownerID) == keep {
			out = append(out, item)
		}
	}
	return out
}
