package ids

import (
	"context"
	"sync"
)

// MemorySequence keeps counters in process memory. It serializes callers with a
// mutex and is meant for tests and single-process tools.
type MemorySequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemorySequence() *MemorySequence {
	return &MemorySequence{counters: make(map[string]int64)}
}

// Seed moves prefix forward to at least last; it never moves a counter back.
func (s *MemorySequence) Seed(prefix string, last int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last > s.counters[prefix] {
		s.counters[prefix] = last
	}
}

func (s *MemorySequence) NextValue(_ context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[prefix]++
	return s.counters[prefix], nil
}

var _ Sequence = (*MemorySequence)(nil)
