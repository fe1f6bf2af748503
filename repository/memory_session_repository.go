package repository

import (
	"context"
	"sync"
	"time"

	"variant-export-service/models"
)

type memoryEntry struct {
	session   *models.ExportSession
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory. Expired entries
// are hidden on read and removed by a background janitor until Close.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewMemorySessionRepository(sweepEvery time.Duration) *MemorySessionRepository {
	return newMemorySessionRepository(sweepEvery, time.Now)
}

func newMemorySessionRepository(sweepEvery time.Duration, now func() time.Time) *MemorySessionRepository {
	m := &MemorySessionRepository{
		entries: make(map[string]memoryEntry),
		now:     now,
		stop:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go m.janitor(sweepEvery)
	}
	return m
}

func (m *MemorySessionRepository) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *MemorySessionRepository) sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func (m *MemorySessionRepository) Put(ctx context.Context, session *models.ExportSession, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[session.ID] = memoryEntry{session: session, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionRepository) Get(ctx context.Context, id string) (*models.ExportSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return e.session, nil
}

// Len reports the number of stored entries, expired ones included until swept.
func (m *MemorySessionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the janitor. It is safe to call more than once.
func (m *MemorySessionRepository) Close() {
	m.once.Do(func() { close(m.stop) })
}
