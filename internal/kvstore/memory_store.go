package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

// MemoryStore keeps values in an in-process freecache. Entries may be
// evicted when the cache is full and are gone after a restart, so it suits
// tests, development setups and caches. Production config refuses it.
type MemoryStore struct {
	cache *freecache.Cache
}

func NewMemoryStore(sizeMB int) *MemoryStore {
	return &MemoryStore{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("freecache get %s: %w", key, err)
	}
	return val, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	expireSeconds := 0
	if ttl > 0 {
		expireSeconds = int(ttl.Seconds())
		if expireSeconds == 0 {
			expireSeconds = 1
		}
	}
	if err := s.cache.Set([]byte(key), value, expireSeconds); err != nil {
		return fmt.Errorf("freecache set %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) Clear() {
	s.cache.Clear()
}
