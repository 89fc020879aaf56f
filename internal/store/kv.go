package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// KV is a flat string key-value store. It is the persistence medium for all
// learner progress: every value is an opaque string and every write replaces
// the previous value wholesale.
type KV interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written (or was deleted).
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
