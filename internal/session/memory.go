package session

import (
	"context"
	"sync"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

type memoryEntry struct {
	identity  models.Identity
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Expired entries are dropped lazily on
// access and by Save when the map is swept.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	saves   int
}

const memorySweepEvery = 256

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     normalizeTTL(ttl),
		now:     time.Now,
	}
}

func (store *MemoryStore) Get(_ context.Context, id string) (models.Identity, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[id]
	if !ok {
		return models.Identity{}, false, nil
	}
	if !store.now().Before(entry.expiresAt) {
		delete(store.entries, id)
		return models.Identity{}, false, nil
	}
	return entry.identity, true, nil
}

func (store *MemoryStore) Save(_ context.Context, id string, identity models.Identity) error {
	if id == "" {
		return ErrInvalidSessionID
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	store.entries[id] = memoryEntry{identity: identity, expiresAt: now.Add(store.ttl)}

	store.saves++
	if store.saves%memorySweepEvery == 0 {
		for key, entry := range store.entries {
			if !now.Before(entry.expiresAt) {
				delete(store.entries, key)
			}
		}
	}
	return nil
}

func (store *MemoryStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, id)
	return nil
}

func (store *MemoryStore) Close() error {
	return nil
}

func (store *MemoryStore) len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.entries)
}
