package storage

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"time"
)

var errClosed = errors.New("ledger closed")

// Memory is an in-process Ledger. It backs tests and runs started without a
// database; its contents are lost on exit.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
	closed  bool
	now     func() time.Time
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{nextID: 1, now: time.Now}
}

// Record appends an entry.
func (m *Memory) Record(initials string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return persistErr("record", errClosed)
	}
	m.entries = append(m.entries, Entry{
		ID:       m.nextID,
		Initials: initials,
		Score:    score,
		PlayedAt: m.now(),
	})
	m.nextID++
	return nil
}

// QueryTop returns up to limit entries ordered like the SQLite store.
func (m *Memory) QueryTop(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, persistErr("query top", errClosed)
	}

	sorted := slices.Clone(m.entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Close marks the ledger closed; later calls fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Ledger = (*Memory)(nil)
