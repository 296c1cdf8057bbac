package store

import (
	"context"
	"sync"

	"frag/internal/debug"
)

type Memory struct {
	mu        sync.RWMutex
	fragments map[uint64]string
}

func NewMemory() *Memory {
	return &Memory{fragments: make(map[uint64]string)}
}

func (m *Memory) Fetch(_ context.Context, id uint64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.fragments[id]
	if debug.Store() {
		debug.Logf("memory fetch %d: found=%t\n", id, ok)
	}
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

func (m *Memory) Put(_ context.Context, id uint64, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragments[id] = code
	return nil
}
