package openf1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/f1nalyzer/internal/f1api"
)

const latestDrivers = `[
  {"driver_number": 1, "first_name": "Max", "last_name": "Verstappen", "team_name": "Red Bull Racing", "team_colour": "3671C6", "country_code": "NED", "headshot_url": "https://example.test/max.png", "session_key": 9158},
  {"driver_number": 44, "first_name": "Lewis", "last_name": "Hamilton", "team_name": "Ferrari", "team_colour": null, "country_code": "GBR", "headshot_url": null, "session_key": 9158},
  {"driver_number": 1, "first_name": "Max", "last_name": "Verstappen", "team_name": "Red Bull Racing", "team_colour": "3671C6", "country_code": "NED", "session_key": 9158},
  {"first_name": "Reserve", "last_name": "Nobody"}
]`

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithInterval(0), WithCacheTTL(0)}, opts...)
	c, err := NewClient(srv.URL+"/v1", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient_RejectsBadBase(t *testing.T) {
	for _, base := range []string{"", "   ", "ftp://api.openf1.org", "/v1"} {
		if _, err := NewClient(base); err == nil {
			t.Fatalf("NewClient(%q) expected error", base)
		}
	}
}

func TestDrivers_RequestsLatestSessionAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/drivers" {
			t.Errorf("path = %q, want /v1/drivers", r.URL.Path)
		}
		if got := r.URL.Query().Get("session_key"); got != "latest" {
			t.Errorf("session_key = %q, want latest", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(latestDrivers))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv).Drivers(context.Background())
	if err != nil {
		t.Fatalf("Drivers: %v", err)
	}
	want := []f1api.Driver{
		{Number: 1, FirstName: "Max", LastName: "Verstappen", TeamName: "Red Bull Racing", TeamColour: "#3671C6", CountryCode: "NED", HeadshotURL: "https://example.test/max.png"},
		{Number: 44, FirstName: "Lewis", LastName: "Hamilton", TeamName: "Ferrari", TeamColour: "#000000", CountryCode: "GBR"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Drivers mismatch (-want +got):\n%s", diff)
	}
}

func TestDrivers_FailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   f1api.Kind
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, want: f1api.KindStatus},
		{name: "not json", status: http.StatusOK, body: `<html>`, want: f1api.KindShape},
		{name: "object instead of list", status: http.StatusOK, body: `{"detail":"no session"}`, want: f1api.KindShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv).Drivers(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if got := f1api.KindOf(err); got != tt.want {
				t.Fatalf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrivers_CachesWithinTTL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(latestDrivers))
	}))
	defer srv.Close()

	now := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	c := newTestClient(t, srv, WithCacheTTL(time.Minute))
	c.now = func() time.Time { return now }

	first, err := c.Drivers(context.Background())
	if err != nil {
		t.Fatalf("Drivers: %v", err)
	}
	first[0].FirstName = "changed"

	second, err := c.Drivers(context.Background())
	if err != nil {
		t.Fatalf("Drivers: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("hits = %d, want 1", hits.Load())
	}
	if second[0].FirstName != "Max" {
		t.Fatalf("cached FirstName = %q, want %q", second[0].FirstName, "Max")
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Drivers(context.Background()); err != nil {
		t.Fatalf("Drivers: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("hits after expiry = %d, want 2", hits.Load())
	}
}

func TestDrivers_CancelledWhileWaitingForLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, WithInterval(time.Hour))
	if _, err := c.Drivers(context.Background()); err != nil {
		t.Fatalf("first Drivers: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Drivers(ctx)
	if got := f1api.KindOf(err); got != f1api.KindNetwork {
		t.Fatalf("KindOf = %v, want %v", got, f1api.KindNetwork)
	}
}

func TestTeamColour(t *testing.T) {
	tests := map[string]string{
		"":         "#000000",
		"  ":       "#000000",
		"FF8000":   "#FF8000",
		"#27F4D2":  "#27F4D2",
		" 64C4FF ": "#64C4FF",
	}
	for in, want := range tests {
		if got := teamColour(in); got != want {
			t.Fatalf("teamColour(%q) = %q, want %q", in, got, want)
		}
	}
}
