package cache

import (
	"context"
	"sync"
	"time"

	"cryptomaster/models"
)

type Memory struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	staleTime time.Duration
	now       func() time.Time
}

func NewMemory(staleTime time.Duration) *Memory {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Memory{
		entries:   make(map[string]Entry),
		staleTime: staleTime,
		now:       time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value *models.AnalysisResult, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Result: value, UpdatedAt: at}
	return nil
}

func (m *Memory) IsStale(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return true, nil
	}
	return isStale(e, m.now(), m.staleTime), nil
}
