package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Snapshot is the list state of one panel as the UI renders it.
type Snapshot[T any] struct {
	Items       []T
	Loading     bool
	LastUpdated time.Time
	// LastError is a blocking failure: the panel shows it instead of items.
	LastError error
	// Advisory is a non-blocking notice shown above the items.
	Advisory string
	// Fallback is true when Items came from the embedded seed.
	Fallback bool
	// Cause is the fetch failure behind a fallback, kept for diagnostics.
	Cause               error
	ConsecutiveFailures int
}

// IsOffline returns true when the service failed on the last two loads.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates updates to a panel snapshot. The zero value is ready.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
}

// Begin marks a load as in flight and clears any blocking error so the retry
// is visible. It returns false when a load already is in flight, so callers
// can ignore repeated triggers. The failure count survives until the load
// settles.
func (s *Store[T]) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Loading {
		return false
	}
	s.snapshot.Loading = true
	s.snapshot.LastError = nil
	return true
}

// Abort clears the loading flag without touching the data, for cancelled loads.
func (s *Store[T]) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loading = false
}

// Update replaces the list wholesale. When err is non-nil the list is emptied
// and the error recorded as blocking.
func (s *Store[T]) Update(items []T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Advisory = ""
	s.snapshot.Fallback = false
	s.snapshot.Cause = nil
	if err != nil {
		s.snapshot.Items = nil
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Items = slices.Clone(items)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// UpdateFallback replaces the list with seed data after a failed load.
func (s *Store[T]) UpdateFallback(items []T, advisory string, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Items = slices.Clone(items)
	s.snapshot.LastError = nil
	s.snapshot.Advisory = advisory
	s.snapshot.Fallback = true
	s.snapshot.Cause = cause
	s.snapshot.ConsecutiveFailures++
}

// Reset drops the list, error and advisory.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot[T]{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = slices.Clone(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
