package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-process KV. It backs tests and the "memory" backend,
// which forgets everything when the process exits.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool

	// Writes records every Set key in call order.
	Writes []string
}

// NewMemory creates an empty Memory store, optionally seeded with values.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.data[k] = v
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	m.Writes = append(m.Writes, key)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Snapshot returns a copy of the stored data.
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
