// Package selection holds the single currently selected entity of a panel.
package selection

// Mode is the presentation mode derived from the slot.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	if m == ModeDetail {
		return "detail"
	}
	return "list"
}

// State is a single-slot holder. The zero value is empty and in list mode.
// It is owned by the UI goroutine and is not safe for concurrent use.
type State[T any] struct {
	item T
	set  bool
}

// Select replaces the slot with item.
func (s *State[T]) Select(item T) {
	s.item = item
	s.set = true
}

// Clear empties the slot, returning to list mode.
func (s *State[T]) Clear() {
	var zero T
	s.item = zero
	s.set = false
}

// Selected returns the selected item and whether one is set.
func (s *State[T]) Selected() (T, bool) {
	return s.item, s.set
}

// Mode reports ModeDetail when an item is selected.
func (s *State[T]) Mode() Mode {
	if s.set {
		return ModeDetail
	}
	return ModeList
}

// ApplyResults resets the slot for a new result list and selects the only
// result when there is exactly one.
func (s *State[T]) ApplyResults(results []T) {
	s.Clear()
	if len(results) == 1 {
		s.Select(results[0])
	}
}
