package fallback

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/five82/f1nalyzer/internal/f1api"
)

//go:embed data/circuits.yaml
var circuitsYAML []byte

//go:embed data/tracks.yaml
var tracksYAML []byte

var (
	seedCircuits = sync.OnceValue(func() []f1api.Circuit { return mustDecode[f1api.Circuit]("circuits", circuitsYAML) })
	seedTracks   = sync.OnceValue(func() []f1api.Track { return mustDecode[f1api.Track]("tracks", tracksYAML) })
)

// Circuits returns a copy of the circuit seed.
func Circuits() []f1api.Circuit {
	return slices.Clone(seedCircuits())
}

// Tracks returns a copy of the track seed.
func Tracks() []f1api.Track {
	return slices.Clone(seedTracks())
}

// Decode parses an embedded YAML seed. It is exported for the sample package,
// which carries its own data files.
func Decode[T any](name string, data []byte) ([]T, error) {
	var out []T
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s seed: %w", name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("decode %s seed: no entries", name)
	}
	return out, nil
}

func mustDecode[T any](name string, data []byte) []T {
	out, err := Decode[T](name, data)
	if err != nil {
		panic(err)
	}
	return out
}
