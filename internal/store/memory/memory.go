// Package memory provides an in-memory cost store and settings store,
// used by the memory backend and as a fake in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"costmanager/internal/core"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	costs    []core.CostRecord
	settings map[string]string

	// now is swappable so tests can pin the stamped creation date.
	now func() time.Time
}

func New() *Store {
	return &Store{
		nextID:   1,
		settings: make(map[string]string),
		now:      time.Now,
	}
}

// NewAt returns a store whose inserts are stamped with the given clock.
func NewAt(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

// AddCost implements store.CostStore.
func (s *Store) AddCost(_ context.Context, cost core.NewCost) (core.CostRecord, error) {
	if err := cost.Validate(); err != nil {
		return core.CostRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := core.Stamp(cost, s.now())
	rec.ID = s.nextID
	s.nextID++
	s.costs = append(s.costs, rec)
	return rec, nil
}

// QueryByYearMonth implements store.CostStore.
func (s *Store) QueryByYearMonth(_ context.Context, year, month int) ([]core.CostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []core.CostRecord{}
	for _, rec := range s.costs {
		if rec.Year == year && rec.Month == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

// QueryAll implements store.CostStore.
func (s *Store) QueryAll(_ context.Context) ([]core.CostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]core.CostRecord(nil), s.costs...), nil
}

// Get implements settings.Store.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[key], nil
}

// Set implements settings.Store.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// Delete implements settings.Store.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, key)
	return nil
}
