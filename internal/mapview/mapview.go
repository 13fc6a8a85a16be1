// Package mapview builds static map tile references for circuits and probes
// whether the tile service will serve them.
package mapview

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/f1nalyzer/internal/f1api"
)

const (
	staticMapBase = "https://maps.googleapis.com/maps/api/staticmap"
	zoom          = 16
	size          = "600x300"
	probeTimeout  = 5 * time.Second
)

// KeyInstructions is shown in place of a map when no credential is configured.
const KeyInstructions = `## Map API key required

To view circuit maps, add a Google Maps Static API key to the config file.

1. Get an API key from Google Cloud Console
2. Enable "Maps Static API" for the key
3. Set ` + "`map_api_key`" + ` in ` + "`~/.config/f1nalyzer/config.toml`" + ` or export ` + "`F1_MAP_API_KEY`"

// State is the outcome of a preview.
type State int

const (
	PreviewMissingKey State = iota
	PreviewReady
	PreviewFallback
)

func (s State) String() string {
	switch s {
	case PreviewReady:
		return "ready"
	case PreviewFallback:
		return "fallback"
	default:
		return "missing key"
	}
}

// Preview describes what to show for a circuit's map.
type Preview struct {
	State State
	// URL is the tile URL when State is PreviewReady.
	URL string
	// Fallback is an SVG data URI when State is PreviewFallback.
	Fallback string
	// Reason explains a fallback.
	Reason string
}

// Service builds and probes map tiles.
type Service struct {
	key    string
	base   string
	http   *http.Client
	logger *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithHTTPClient replaces the probe client.
func WithHTTPClient(h *http.Client) Option {
	return func(s *Service) {
		if h != nil {
			s.http = h
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBaseURL points the service at another tile endpoint. Tests use it.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		if strings.TrimSpace(base) != "" {
			s.base = base
		}
	}
}

// NewService returns a Service using key. An empty key is allowed and puts
// every preview in PreviewMissingKey.
func NewService(key string, opts ...Option) *Service {
	s := &Service{
		key:    strings.TrimSpace(key),
		base:   staticMapBase,
		http:   &http.Client{Timeout: probeTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasKey reports whether a credential is configured.
func (s *Service) HasKey() bool {
	return s.key != ""
}

// StaticURL builds the tile URL for c against the default endpoint.
func StaticURL(c f1api.Circuit, key string) string {
	return buildURL(staticMapBase, c, key)
}

func buildURL(base string, c f1api.Circuit, key string) string {
	lat := strings.TrimSpace(c.Location.Lat)
	long := strings.TrimSpace(c.Location.Long)
	center := lat + "," + long
	return fmt.Sprintf("%s?center=%s&zoom=%d&size=%s&maptype=roadmap&markers=color:red%%7C%s&key=%s",
		base, center, zoom, size, center, url.QueryEscape(key))
}

// Preview decides what to show for c. Without a key no request is made.
// Otherwise one GET probes the tile and any failure yields the fallback SVG.
func (s *Service) Preview(ctx context.Context, c f1api.Circuit) Preview {
	if !s.HasKey() {
		return Preview{State: PreviewMissingKey}
	}
	if _, _, ok := c.Coordinates(); !ok {
		return s.fallback(c, "circuit has no usable coordinates")
	}

	tile := buildURL(s.base, c, s.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tile, nil)
	if err != nil {
		return s.fallback(c, fmt.Sprintf("create request: %v", err))
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return s.fallback(c, fmt.Sprintf("execute request: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return s.fallback(c, fmt.Sprintf("tile service returned status %d", resp.StatusCode))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return s.fallback(c, fmt.Sprintf("tile service returned %q", ct))
	}
	return Preview{State: PreviewReady, URL: tile}
}

func (s *Service) fallback(c f1api.Circuit, reason string) Preview {
	// The key is part of the URL, so only the circuit is logged.
	s.logger.Warn("map tile unavailable", zap.String("circuit", c.ID), zap.String("reason", reason))
	return Preview{State: PreviewFallback, Fallback: FallbackSVG(c), Reason: reason}
}

// FallbackSVG returns a data URI for a 600x300 placeholder graphic naming
// the circuit and its location.
func FallbackSVG(c f1api.Circuit) string {
	svg := fmt.Sprintf(`<svg width="600" height="300" viewBox="0 0 600 300" xmlns="http://www.w3.org/2000/svg">`+
		`<rect width="100%%" height="100%%" fill="#1a1a1a"/>`+
		`<circle cx="50%%" cy="50%%" r="100" fill="none" stroke="#333" stroke-width="2"/>`+
		`<line x1="50%%" y1="0" x2="50%%" y2="100%%" stroke="#333" stroke-width="2"/>`+
		`<line x1="0" y1="50%%" x2="100%%" y2="50%%" stroke="#333" stroke-width="2"/>`+
		`<text x="50%%" y="40%%" font-family="Arial, sans-serif" font-size="16" fill="#666" text-anchor="middle">%s</text>`+
		`<text x="50%%" y="50%%" font-family="Arial, sans-serif" font-size="14" fill="#888" text-anchor="middle">%s</text>`+
		`<text x="50%%" y="65%%" font-family="Arial, sans-serif" font-size="12" fill="#555" text-anchor="middle">Map unavailable</text>`+
		`</svg>`,
		html.EscapeString(c.Name), html.EscapeString(c.Place()))
	return "data:image/svg+xml;utf8," + strings.ReplaceAll(url.QueryEscape(svg), "+", "%20")
}

// DecodeFallback returns the SVG markup inside a FallbackSVG data URI.
func DecodeFallback(uri string) (string, error) {
	const prefix = "data:image/svg+xml;utf8,"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("not an svg data uri")
	}
	return url.QueryUnescape(strings.TrimPrefix(uri, prefix))
}

var svgText = regexp.MustCompile(`<text[^>]*>([^<]*)</text>`)

// FallbackLabels returns the text lines drawn by a FallbackSVG graphic, for
// terminals that cannot show the image.
func FallbackLabels(uri string) ([]string, error) {
	svg, err := DecodeFallback(uri)
	if err != nil {
		return nil, err
	}
	var labels []string
	for _, m := range svgText.FindAllStringSubmatch(svg, -1) {
		labels = append(labels, html.UnescapeString(m[1]))
	}
	return labels, nil
}
