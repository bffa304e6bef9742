package store

import (
	"context"
	"slices"
	"sync"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

// Memory is a Backend that keeps the collection in memory.
// It is used in tests and for dry runs.
type Memory struct {
	mu        sync.Mutex
	schedules []schedule.Schedule
	saves     int
}

// NewMemory returns a Memory backend seeded with schedules.
func NewMemory(schedules ...schedule.Schedule) *Memory {
	return &Memory{schedules: slices.Clone(schedules)}
}

// Load implements Backend.
func (m *Memory) Load(_ context.Context) ([]schedule.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.schedules), nil
}

// Save implements Backend.
func (m *Memory) Save(_ context.Context, schedules []schedule.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules = slices.Clone(schedules)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
