package achievements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/2beens/liftlog/internal/kvstore"
)

// UnlockStore persists unlocked achievement ids per user. Ids are only ever
// added, as long as the backing store keeps them: back it with
// kvstore.RedisStore in production. kvstore.MemoryStore may evict entries
// and forgets everything on restart, it is for development and tests only.
type UnlockStore struct {
	store kvstore.Store
	mutex sync.Mutex
}

func NewUnlockStore(store kvstore.Store) *UnlockStore {
	return &UnlockStore{
		store: store,
	}
}

func unlockedKey(userID string) string {
	return "achievements:unlocked:" + userID
}

func (s *UnlockStore) Load(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.store.Get(ctx, unlockedKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("load unlocked achievements: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("unmarshal unlocked achievements: %w", err)
	}
	return ids, nil
}

// Save adds ids to the stored set and returns the union.
func (s *UnlockStore) Save(ctx context.Context, userID string, ids []string) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := stored
	known := idSet(stored)
	for _, id := range ids {
		if known[id] {
			continue
		}
		known[id] = true
		merged = append(merged, id)
	}

	if len(merged) == len(stored) {
		return merged, nil
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, unlockedKey(userID), raw, 0); err != nil {
		return nil, fmt.Errorf("save unlocked achievements: %w", err)
	}
	return merged, nil
}
