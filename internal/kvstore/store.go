// Package kvstore holds the small key-value persistence boundary used for
// per-user state that does not need relational storage: unlocked
// achievements, recently used exercises and cached auth checks.
package kvstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Store is a byte-oriented key-value store. A zero ttl means no expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
