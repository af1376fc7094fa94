package storage

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	maps        map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.maps = make(map[string]Record)
	return nil
}

func (s *MemoryStore) SaveMap(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	record.Rules = slices.Clone(record.Rules)
	record.Transitions = slices.Clone(record.Transitions)
	s.maps[record.ID] = record
	return nil
}

func (s *MemoryStore) GetMap(_ context.Context, id string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.maps[id]
	if ok {
		record.Transitions = slices.Clone(record.Transitions)
	}
	return record, ok, nil
}

func (s *MemoryStore) ListMaps(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.maps))
	for _, record := range s.maps {
		out = append(out, record.Summary())
	}
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) DeleteMap(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.maps, id)
	return nil
}

// sortSummaries orders by creation time, then id.
func sortSummaries(out []Summary) {
	slices.SortFunc(out, func(a, b Summary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

var _ Store = (*MemoryStore)(nil)

