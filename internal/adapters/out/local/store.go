// backend/internal/adapters/out/local/store.go
package local

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Collection keys in the local store.
const (
	KeyProducts = "products"
	KeyOrders   = "orders"
	KeyCart     = "cart"
)

// Store is a local persistent key-value store holding one JSON blob per key.
// Put replaces the whole value; readers never observe a partial write.
type Store interface {
	// Get returns (nil, false, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Collection is a typed view of one key holding a JSON array of T.
type Collection[T any] struct {
	store Store
	key   string
}

func NewCollection[T any](store Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Load returns the stored records. An absent key, a read failure or corrupt JSON
// all yield an empty slice; the failure is logged, never returned.
func (c *Collection[T]) Load(ctx context.Context) []T {
	if c == nil || c.store == nil {
		return []T{}
	}
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		log.Printf("[local] WARN: read %q failed: %v (treated as empty)", c.key, err)
		return []T{}
	}
	if !ok || len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[local] WARN: parse %q failed: %v (treated as empty)", c.key, err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// Save writes the full snapshot.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, c.key, raw)
}

// ============================================================
// MemoryStore
// ============================================================

// MemoryStore keeps values in process memory (tests, LOCAL_STORE=memory).
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.mu.Lock()
	s.m[key] = cp
	s.mu.Unlock()
	return nil
}
