// Package task gives each fetch a cancellable identity so results that
// arrive after their view moved on can be recognised and dropped.
package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ID identifies one fetch.
type ID = uuid.UUID

// Task is a started fetch. Ctx is cancelled when the task is superseded,
// finished or the tracker is torn down.
type Task struct {
	ID  ID
	Key string
	Ctx context.Context
}

type entry struct {
	id     ID
	cancel context.CancelFunc
}

// Tracker holds at most one current task per key.
type Tracker struct {
	mu     sync.Mutex
	parent context.Context
	tasks  map[string]entry
}

// NewTracker derives all task contexts from parent.
func NewTracker(parent context.Context) *Tracker {
	if parent == nil {
		parent = context.Background()
	}
	return &Tracker{parent: parent, tasks: make(map[string]entry)}
}

// Start begins a task for key, cancelling the task it replaces.
func (t *Tracker) Start(key string) Task {
	ctx, cancel := context.WithCancel(t.parent)
	id := uuid.New()

	t.mu.Lock()
	if prev, ok := t.tasks[key]; ok {
		prev.cancel()
	}
	t.tasks[key] = entry{id: id, cancel: cancel}
	t.mu.Unlock()

	return Task{ID: id, Key: key, Ctx: ctx}
}

// Current reports whether id is still the live task for key.
func (t *Tracker) Current(key string, id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.tasks[key]
	return ok && e.id == id
}

// Finish releases the task if it is still current and reports whether it was.
// A late result whose task was superseded or cancelled returns false.
func (t *Tracker) Finish(key string, id ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.tasks[key]
	if !ok || e.id != id {
		return false
	}
	e.cancel()
	delete(t.tasks, key)
	return true
}

// Cancel aborts the current task for key, if any.
func (t *Tracker) Cancel(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.tasks[key]; ok {
		e.cancel()
		delete(t.tasks, key)
	}
}

// CancelAll aborts every task. Later results for them are reported stale.
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, e := range t.tasks {
		e.cancel()
		delete(t.tasks, key)
	}
}

// Pending returns the number of live tasks.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tasks)
}
