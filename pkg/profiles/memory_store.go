package profiles

import (
	"context"
	"sync"

	scrollscene "github.com/goliatone/go-scrollscene"
)

// MemoryStore is a minimal in-memory Store for tests and examples. It keys
// records by Ref.Identifier and makes no persistence assumptions beyond
// that.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	snapshot scrollscene.Config
	meta     Meta
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, ref Ref) (scrollscene.Config, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return scrollscene.Config{}, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return scrollscene.Config{}, Meta{}, false, nil
	}
	return record.snapshot, cloneMeta(record.meta), true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, ref Ref, snapshot scrollscene.Config, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	s.mu.Lock()
	s.records[key] = memoryRecord{snapshot: snapshot, meta: cloneMeta(meta)}
	s.mu.Unlock()
	return cloneMeta(meta), nil
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
