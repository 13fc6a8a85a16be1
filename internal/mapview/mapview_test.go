package mapview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/fallback"
)

func monaco() f1api.Circuit {
	for _, c := range fallback.Circuits() {
		if c.ID == "monaco" {
			return c
		}
	}
	panic("monaco missing from seed")
}

func TestStaticURL(t *testing.T) {
	got := StaticURL(monaco(), "K&1")
	want := "https://maps.googleapis.com/maps/api/staticmap?center=43.7347,7.42056&zoom=16&size=600x300&maptype=roadmap&markers=color:red%7C43.7347,7.42056&key=K%261"
	if got != want {
		t.Fatalf("StaticURL = %q\nwant %q", got, want)
	}
}

func TestPreview_EmptyKeyIssuesNoRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	for _, key := range []string{"", "   "} {
		svc := NewService(key, WithBaseURL(server.URL))
		p := svc.Preview(context.Background(), monaco())
		if p.State != PreviewMissingKey {
			t.Fatalf("key %q: state = %s, want missing key", key, p.State)
		}
	}
	if hits.Load() != 0 {
		t.Fatalf("tile server hits = %d, want 0", hits.Load())
	}
	if !strings.Contains(KeyInstructions, "map_api_key") {
		t.Fatal("instructions do not name the config key")
	}
}

func TestPreview_ReadyOnImage(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	t.Cleanup(server.Close)

	svc := NewService("abc", WithBaseURL(server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	p := svc.Preview(ctx, monaco())
	if p.State != PreviewReady {
		t.Fatalf("state = %s (%s), want ready", p.State, p.Reason)
	}
	if !strings.HasPrefix(p.URL, server.URL) || !strings.Contains(gotQuery, "key=abc") {
		t.Fatalf("url = %q query = %q", p.URL, gotQuery)
	}
}

func TestPreview_FallbackOnFailure(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"forbidden": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		},
		"not an image": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>denied</html>"))
		},
	}
	for name, h := range cases {
		server := httptest.NewServer(h)
		svc := NewService("abc", WithBaseURL(server.URL))
		p := svc.Preview(context.Background(), monaco())
		server.Close()

		if p.State != PreviewFallback {
			t.Fatalf("%s: state = %s, want fallback", name, p.State)
		}
		svg, err := DecodeFallback(p.Fallback)
		if err != nil {
			t.Fatalf("%s: DecodeFallback returned error: %v", name, err)
		}
		if !strings.Contains(svg, "Circuit de Monaco") || !strings.Contains(svg, "Monte-Carlo, Monaco") {
			t.Fatalf("%s: svg missing circuit text: %s", name, svg)
		}
	}
}

func TestPreview_MissingCoordinatesSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	svc := NewService("abc", WithBaseURL(server.URL))
	p := svc.Preview(context.Background(), f1api.Circuit{ID: "x", Name: "Nowhere"})
	if p.State != PreviewFallback || hits.Load() != 0 {
		t.Fatalf("state = %s hits = %d, want fallback without request", p.State, hits.Load())
	}
}

func TestPreview_NonFiniteCoordinatesSkipRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	svc := NewService("abc", WithBaseURL(server.URL))
	c := f1api.Circuit{ID: "x", Name: "Nowhere", Location: f1api.CircuitLocation{Lat: "NaN", Long: "Inf"}}
	p := svc.Preview(context.Background(), c)
	if p.State != PreviewFallback || hits.Load() != 0 {
		t.Fatalf("state = %s hits = %d, want fallback without request", p.State, hits.Load())
	}
}

func TestFallbackSVG_EscapesMarkup(t *testing.T) {
	c := f1api.Circuit{Name: `A<b>&"C"`, Location: f1api.CircuitLocation{Country: "X"}}
	svg, err := DecodeFallback(FallbackSVG(c))
	if err != nil {
		t.Fatalf("DecodeFallback returned error: %v", err)
	}
	if strings.Contains(svg, "<b>") {
		t.Fatalf("svg contains unescaped markup: %s", svg)
	}
	if !strings.Contains(svg, "Map unavailable") || !strings.Contains(svg, `width="600" height="300"`) {
		t.Fatalf("svg = %s", svg)
	}
}

func TestFallbackLabels(t *testing.T) {
	c := f1api.Circuit{Name: "Rock & Roll <Ring>", Location: f1api.CircuitLocation{Locality: "Nürburg", Country: "Germany"}}
	labels, err := FallbackLabels(FallbackSVG(c))
	if err != nil {
		t.Fatalf("FallbackLabels returned error: %v", err)
	}
	want := []string{"Rock & Roll <Ring>", "Nürburg, Germany", "Map unavailable"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %q, want %q", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}

	if _, err := FallbackLabels("https://example.test/map.png"); err == nil {
		t.Fatal("FallbackLabels on a plain URL should fail")
	}
}
