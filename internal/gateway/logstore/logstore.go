// Package logstore records every content-generation request and serves
// the log query and statistics endpoints.
package logstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/automarketing/content-gateway/internal/shared/models"
)

// ErrNotFound is returned when a log entry id does not exist.
var ErrNotFound = errors.New("log entry not found")

// Store persists generation log entries. Implementations must be safe
// for concurrent use.
type Store interface {
	Insert(ctx context.Context, entry *models.GenerationLogEntry) error
	GetByID(ctx context.Context, id string) (*models.GenerationLogEntry, error)
	Recent(ctx context.Context, limit int) ([]models.GenerationLogEntry, error)
	Statistics(ctx context.Context, days int) (*models.Statistics, error)
	Close() error
}

// Memory is an in-process Store used in tests and when no database is
// configured. Entries are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	entries []models.GenerationLogEntry
	byID    map[string]int

	now func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID: make(map[string]int),
		now:  time.Now,
	}
}

func (m *Memory) Insert(ctx context.Context, entry *models.GenerationLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[entry.ID]; exists {
		return errors.New("duplicate log entry id")
	}
	m.byID[entry.ID] = len(m.entries)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *Memory) GetByID(ctx context.Context, id string) (*models.GenerationLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	entry := m.entries[idx]
	return &entry, nil
}

// Recent returns up to limit entries, newest first. Insertion order is
// the source of truth for recency; timestamps are not consulted.
func (m *Memory) Recent(ctx context.Context, limit int) ([]models.GenerationLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.GenerationLogEntry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// Statistics aggregates entries created within the last days days.
func (m *Memory) Statistics(ctx context.Context, days int) (*models.Statistics, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := models.NewStatistics(days)
	cutoff := m.now().UTC().AddDate(0, 0, -days)

	var totalDuration int64
	for _, entry := range m.entries {
		if entry.CreatedAt.Before(cutoff) {
			continue
		}
		stats.TotalRequests++
		stats.ByKind[string(entry.Kind)]++
		if entry.ContentType != "" {
			stats.ByContentType[entry.ContentType]++
		}
		if entry.Platform != "" {
			stats.ByPlatform[entry.Platform]++
		}
		totalDuration += entry.DurationMs
	}
	if stats.TotalRequests > 0 {
		stats.AvgDurationMs = float64(totalDuration) / float64(stats.TotalRequests)
	}
	return stats, nil
}

func (m *Memory) Close() error { return nil }
