package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/pitchside/internal/domain/model"
)

// MemoryStore is an in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	byAthlete map[string][]model.Benchmark
	owner     map[string]string // benchmark id -> athlete id
	now       func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byAthlete: make(map[string][]model.Benchmark),
		owner:     make(map[string]string),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores b. The first benchmark of an athlete becomes its baseline.
func (s *MemoryStore) Save(_ context.Context, b model.Benchmark) (model.Benchmark, error) {
	if b.AthleteID == "" {
		return model.Benchmark{}, fmt.Errorf("%w: missing athlete id", ErrInvalid)
	}
	if b.ID == "" {
		b.ID = model.NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owner[b.ID]; ok {
		return model.Benchmark{}, fmt.Errorf("%w: %s", ErrDuplicate, b.ID)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	b.IsBaseline = len(s.byAthlete[b.AthleteID]) == 0
	s.byAthlete[b.AthleteID] = append(s.byAthlete[b.AthleteID], b)
	s.owner[b.ID] = b.AthleteID
	return b, nil
}

// Get returns the benchmark with id.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Benchmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	athlete, ok := s.owner[id]
	if !ok {
		return model.Benchmark{}, ErrNotFound
	}
	for _, b := range s.byAthlete[athlete] {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Benchmark{}, ErrNotFound
}

// List returns an athlete's benchmarks, oldest first.
func (s *MemoryStore) List(_ context.Context, athleteID string) ([]model.Benchmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.byAthlete[athleteID]
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return append([]model.Benchmark(nil), rows...), nil
}

// Baseline returns an athlete's baseline benchmark.
func (s *MemoryStore) Baseline(_ context.Context, athleteID string) (model.Benchmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.byAthlete[athleteID]
	if len(rows) == 0 || !rows[0].IsBaseline {
		return model.Benchmark{}, ErrNotFound
	}
	return rows[0], nil
}

// Latest returns an athlete's most recent benchmark.
func (s *MemoryStore) Latest(_ context.Context, athleteID string) (model.Benchmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.byAthlete[athleteID]
	if len(rows) == 0 {
		return model.Benchmark{}, ErrNotFound
	}
	return rows[len(rows)-1], nil
}

// Delete removes a benchmark. Baselines cannot be deleted.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	athlete, ok := s.owner[id]
	if !ok {
		return ErrNotFound
	}
	rows := s.byAthlete[athlete]
	for i, b := range rows {
		if b.ID != id {
			continue
		}
		if b.IsBaseline {
			return fmt.Errorf("%w: %s", ErrBaselineImmutable, id)
		}
		s.byAthlete[athlete] = append(rows[:i:i], rows[i+1:]...)
		delete(s.owner, id)
		return nil
	}
	return ErrNotFound
}

// Count returns the number of stored benchmarks.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owner)
}
