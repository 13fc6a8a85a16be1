// Package sample holds the offline dataset the backend serves with --sample
// and the race results it always serves.
package sample

import (
	_ "embed"
	"slices"
	"sync"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/fallback"
)

//go:embed data/drivers.yaml
var driversYAML []byte

//go:embed data/races.yaml
var racesYAML []byte

var (
	drivers = sync.OnceValue(func() []f1api.Driver { return mustDecode[f1api.Driver]("drivers", driversYAML) })
	races   = sync.OnceValue(func() []f1api.Race { return mustDecode[f1api.Race]("races", racesYAML) })
)

// Drivers returns a copy of the sample roster.
func Drivers() []f1api.Driver {
	return slices.Clone(drivers())
}

// Races returns a copy of the sample races. Result slices are copied too.
func Races() []f1api.Race {
	src := races()
	out := make([]f1api.Race, len(src))
	for i, r := range src {
		r.Results = slices.Clone(r.Results)
		out[i] = r
	}
	return out
}

// Tracks returns the track seed shared with the fallback store.
func Tracks() []f1api.Track {
	return fallback.Tracks()
}

func mustDecode[T any](name string, data []byte) []T {
	out, err := fallback.Decode[T](name, data)
	if err != nil {
		panic(err)
	}
	return out
}
