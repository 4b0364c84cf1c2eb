package store

import (
	"context"
	"sync"
)

// Memory keeps the code for the lifetime of the process.
type Memory struct {
	mu   sync.Mutex
	code string
	set  bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.code, m.set, nil
}

func (m *Memory) Save(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code, m.set = code, true
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Describe() string { return "memory" }
