package filter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/fallback"
	"github.com/five82/f1nalyzer/internal/sample"
)

var sampleQueries = []string{
	"", "   ", "a", "A", "max", "MAX", " ham ", "lec", "ar", "o", "zzz",
	"monaco", "MONACO", "uk", "australia", "albert_park", "spa", "circuit", "-", "é",
}

func TestApply_EmptyQueryIsIdentity(t *testing.T) {
	drivers := sample.Drivers()
	for _, q := range []string{"", " ", "\t\n "} {
		got := Apply(drivers, q)
		if diff := cmp.Diff(drivers, got); diff != "" {
			t.Fatalf("Apply(%q) changed the list (-want +got):\n%s", q, diff)
		}
	}
}

func TestApply_Properties(t *testing.T) {
	checkProperties(t, "drivers", sample.Drivers())
	checkProperties(t, "circuits", fallback.Circuits())
	checkProperties(t, "tracks", fallback.Tracks())
}

func checkProperties[T Searchable](t *testing.T, name string, items []T) {
	t.Helper()
	for _, q := range sampleQueries {
		got := Apply(items, q)

		// Order-preserving subsequence of the input.
		next := 0
		for _, g := range got {
			found := false
			for next < len(items) {
				if cmp.Equal(items[next], g) {
					found = true
					next++
					break
				}
				next++
			}
			if !found {
				t.Fatalf("%s: Apply(%q) is not a subsequence of the input", name, q)
			}
		}

		// Every kept item has a field containing the normalized query.
		nq := Normalize(q)
		for _, g := range got {
			ok := false
			for _, f := range g.SearchFields() {
				if strings.Contains(strings.ToLower(f), nq) {
					ok = true
					break
				}
			}
			if !ok {
				t.Fatalf("%s: Apply(%q) kept %+v with no matching field", name, q, g)
			}
		}

		// Idempotent.
		if diff := cmp.Diff(got, Apply(got, q)); diff != "" {
			t.Fatalf("%s: Apply(%q) is not idempotent (-once +twice):\n%s", name, q, diff)
		}

		// Deterministic.
		if diff := cmp.Diff(got, Apply(items, q)); diff != "" {
			t.Fatalf("%s: Apply(%q) is not deterministic:\n%s", name, q, diff)
		}
	}
}

func TestDrivers_MaxMatchesVerstappenOnly(t *testing.T) {
	got := Drivers(sample.Drivers(), "Max")
	if len(got) != 1 || got[0].FullName() != "Max Verstappen" {
		t.Fatalf("Drivers(Max) = %+v, want only Max Verstappen", got)
	}
}

func TestDrivers_FullNameAndNoMatch(t *testing.T) {
	if got := Drivers(sample.Drivers(), "lewis ham"); len(got) != 1 || got[0].LastName != "Hamilton" {
		t.Fatalf("Drivers(lewis ham) = %+v, want Hamilton", got)
	}
	if got := Drivers(sample.Drivers(), "zzz"); len(got) != 0 {
		t.Fatalf("Drivers(zzz) = %+v, want none", got)
	}
}

func TestTracks_MonacoAnyCase(t *testing.T) {
	for _, q := range []string{"monaco", "MONACO", "MoNaCo", "  monaco  "} {
		got := Tracks(fallback.Tracks(), q)
		if len(got) != 1 || got[0].Name != "Monaco Circuit" {
			t.Fatalf("Tracks(%q) = %+v, want only Monaco Circuit", q, got)
		}
	}
}

func TestCircuits_MatchesEveryField(t *testing.T) {
	circuits := fallback.Circuits()
	cases := map[string][]string{
		"monza":       {"monza"},
		"australia":   {"adelaide", "albert_park"},
		"albert_park": {"albert_park"},
		"são":         {"interlagos"},
		"USA":         {"americas"},
	}
	for q, want := range cases {
		var ids []string
		for _, c := range Circuits(circuits, q) {
			ids = append(ids, c.ID)
		}
		if diff := cmp.Diff(want, ids); diff != "" {
			t.Fatalf("Circuits(%q) ids mismatch (-want +got):\n%s", q, diff)
		}
	}
}

func TestCircuits_SkipsAbsentLocality(t *testing.T) {
	circuits := []f1api.Circuit{
		{ID: "x", Name: "Nowhere Ring", Location: f1api.CircuitLocation{Country: "Atlantis"}},
		{ID: "y", Name: "Elsewhere", Location: f1api.CircuitLocation{Locality: "Ring Town"}},
	}
	got := Circuits(circuits, "ring")
	if len(got) != 2 {
		t.Fatalf("Circuits(ring) = %+v, want both", got)
	}
	if got := Circuits(circuits, "atl"); len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("Circuits(atl) = %+v, want x", got)
	}
}

func TestSuggest(t *testing.T) {
	drivers := sample.Drivers()
	got := Suggest(drivers, "verstapen", 3)
	if len(got) == 0 || got[0] != "Verstappen" {
		t.Fatalf("Suggest(verstapen) = %v, want Verstappen first", got)
	}
	if got := Suggest(drivers, "zzz", 3); len(got) != 0 {
		t.Fatalf("Suggest(zzz) = %v, want none", got)
	}
	if got := Suggest(drivers, "", 3); got != nil {
		t.Fatalf("Suggest(\"\") = %v, want nil", got)
	}
	if got := Suggest(fallback.Tracks(), "suzka", 1); len(got) != 1 {
		t.Fatalf("Suggest(suzka, 1) = %v, want one suggestion", got)
	}
}
