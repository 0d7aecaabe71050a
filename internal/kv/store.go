// ABOUTME: Key-value storage port used by the auth and health stores.
// ABOUTME: Defines the Store contract, well-known record keys, and ErrNotFound.
package kv

import "errors"

// Record keys. Each key holds one JSON document.
const (
	SessionKey    = "health_tracker_auth"
	UsersKey      = "health_tracker_users"
	WorkoutsKey   = "health_tracker_workouts"
	WaterKey      = "health_tracker_water"
	StepsKey      = "health_tracker_steps"
	ActivitiesKey = "health_tracker_activities"
)

// AllKeys lists every record key the application writes.
var AllKeys = []string{
	SessionKey,
	UsersKey,
	WorkoutsKey,
	WaterKey,
	StepsKey,
	ActivitiesKey,
}

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a minimal get/set/remove key-value substrate.
// Implementations must be safe for use by multiple goroutines.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value stored at key.
	Set(key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Close releases the underlying resources.
	Close() error
}
