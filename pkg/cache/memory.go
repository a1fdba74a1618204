package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store used in development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[Namespace]map[string]Entry
	version int
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{data: make(map[Namespace]map[string]Entry)}
	s.ensureSchema()
	return s
}

// ensureSchema creates any namespaces introduced since the version this
// store last saw. Creation is additive only.
func (s *MemoryStore) ensureSchema() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version >= SchemaVersion {
		return
	}
	for _, ns := range AllNamespaces {
		if _, ok := s.data[ns]; !ok {
			s.data[ns] = make(map[string]Entry)
		}
	}
	s.version = SchemaVersion
}

func (s *MemoryStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[ns]
	if !ok {
		return nil, false, nil
	}
	e, ok := bucket[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		delete(bucket, key)
		return nil, false, nil
	}
	return e.Value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, ns Namespace, key string, value []byte, ttl time.Duration, secondaryKey string) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[ns]
	if !ok {
		bucket = make(map[string]Entry)
		s.data[ns] = bucket
	}
	bucket[key] = Entry{
		Key:          key,
		Value:        value,
		Timestamp:    now,
		ExpiresAt:    now.Add(ttl),
		SecondaryKey: secondaryKey,
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, ns Namespace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ns] = make(map[string]Entry)
	return nil
}

func (s *MemoryStore) InvalidateBy(ctx context.Context, ns Namespace, secondaryKey string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[ns]
	if !ok {
		return 0, nil
	}
	removed := 0
	for key, e := range bucket {
		if e.SecondaryKey == secondaryKey {
			delete(bucket, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	swept := 0
	for _, bucket := range s.data {
		for key, e := range bucket {
			if e.expired(now) {
				delete(bucket, key)
				swept++
			}
		}
	}
	return swept, nil
}
