// SPDX-License-Identifier: MIT

package prefs

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryStore returns a Store that lives as long as the process.
func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string]map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, namespace, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[namespace][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string]string)
		m.data[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[namespace], key)
	return nil
}

func (m *memoryStore) Ping(context.Context) error { return nil }

func (m *memoryStore) Close() error { return nil }
