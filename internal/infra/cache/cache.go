// Package cache provides the short-lived response cache used by the story
// list endpoint: deterministic key derivation from query parameters plus a
// fixed-TTL key-value store with Redis and in-memory implementations.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store for serialized response payloads.
// It is injected into the handlers that need it; implementations must be safe
// for concurrent use. Two concurrent misses recomputing and overwriting the
// same key is acceptable, so no mutual exclusion around population is offered.
type Store interface {
	// Get returns the payload stored under key, and whether a live entry
	// exists. An expired or absent entry is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the payload under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the entry for key, if present. Used by operators to
	// force recomputation before the TTL elapses.
	Delete(ctx context.Context, key string) error
}
