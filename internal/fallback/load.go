package fallback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/five82/f1nalyzer/internal/f1api"
)

// Advisories shown when the seed replaces a failed fetch.
const (
	CircuitsAdvisory = "Failed to load circuits. Using sample data instead."
	TracksAdvisory   = "Failed to load tracks. Using sample data instead."
)

// Source records where a list came from.
type Source int

const (
	SourceRemote Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "sample data"
	}
	return "live"
}

// Result is a list ready for display plus the reason it may not be live.
type Result[T any] struct {
	Items    []T
	Source   Source
	Advisory string
	// Cause is the fetch failure that triggered the fallback.
	Cause error
}

// CircuitFetcher is the slice of f1api.Fetcher needed by LoadCircuits.
type CircuitFetcher interface {
	FetchCircuits(ctx context.Context) ([]f1api.Circuit, error)
}

// TrackFetcher is the slice of f1api.Fetcher needed by LoadTracks.
type TrackFetcher interface {
	FetchTracks(ctx context.Context) ([]f1api.Track, error)
}

// LoadCircuits fetches the circuit directory and substitutes the seed on any
// fetch failure, including an empty table.
func LoadCircuits(ctx context.Context, f CircuitFetcher, logger *zap.Logger) Result[f1api.Circuit] {
	items, err := f.FetchCircuits(ctx)
	return resolve(items, err, Circuits, CircuitsAdvisory, orNop(logger).With(zap.String("resource", "circuits")))
}

// LoadTracks fetches tracks and substitutes the seed on any fetch failure.
func LoadTracks(ctx context.Context, f TrackFetcher, logger *zap.Logger) Result[f1api.Track] {
	items, err := f.FetchTracks(ctx)
	return resolve(items, err, Tracks, TracksAdvisory, orNop(logger).With(zap.String("resource", "tracks")))
}

func resolve[T any](items []T, err error, seed func() []T, advisory string, logger *zap.Logger) Result[T] {
	if err == nil && len(items) > 0 {
		return Result[T]{Items: items, Source: SourceRemote}
	}
	if err == nil {
		err = &f1api.FetchError{Kind: f1api.KindEmpty}
	}
	// Cancellation is not a service failure; the caller discards the result.
	if errors.Is(err, context.Canceled) {
		return Result[T]{Cause: err}
	}
	logger.Info("using fallback seed", zap.Stringer("kind", f1api.KindOf(err)), zap.Error(err))
	return Result[T]{
		Items:    seed(),
		Source:   SourceFallback,
		Advisory: advisory,
		Cause:    err,
	}
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
