package repository

import (
	"context"
	"sync"
)

// MemorySettingsRepository is the settings store used with the in-memory
// session backend.
type MemorySettingsRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{values: map[string]string{}}
}

func (m *MemorySettingsRepository) Load(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemorySettingsRepository) Save(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string, len(values))
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}
