package storage

import (
	"fmt"
	"time"
)

// DefaultLimit is used by QueryTop when the caller passes a non-positive limit.
const DefaultLimit = 10

// Entry is one row of the high score ledger.
type Entry struct {
	ID       int64
	Initials string
	Score    int
	PlayedAt time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %d", e.Initials, e.Score)
}

// Ledger is the append-only high score list.
// Implementations must be safe for concurrent use: SSH sessions share one.
type Ledger interface {
	// Record appends a finished run. Duplicates are kept.
	Record(initials string, score int) error

	// QueryTop returns the best entries, score descending, ties in
	// insertion order.
	QueryTop(limit int) ([]Entry, error)

	Close() error
}

// PersistenceError is returned when the backing store fails.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
