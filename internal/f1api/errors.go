package f1api

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned by SearchDrivers before any request is made.
var ErrEmptyQuery = errors.New("driver search query is empty")

// Kind classifies why a fetch failed.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindStatus
	KindShape
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindShape:
		return "shape"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FetchError carries the distinguishable cause of a failed fetch.
type FetchError struct {
	Kind     Kind
	Resource string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("fetch %s: returned status %d", e.Resource, e.Status)
	case e.Kind == KindEmpty:
		return fmt.Sprintf("fetch %s: no entries", e.Resource)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %s: %v", e.Resource, e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %s failure", e.Resource, e.Kind)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf reports the failure kind of err, or 0 when err is not a *FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
