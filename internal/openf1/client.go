// Package openf1 reads the current session's driver list from the OpenF1 API.
// It backs the driver search service run by `f1nalyzer serve`.
package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/five82/f1nalyzer/internal/f1api"
)

const (
	defaultUserAgent  = "f1nalyzer/0.1"
	requestTimeout    = 10 * time.Second
	maxBodyBytes      = 8 << 20
	defaultInterval   = 500 * time.Millisecond
	defaultCacheTTL   = 30 * time.Second
	defaultTeamColour = "#000000"
	latestSession     = "latest"
)

// Client fetches drivers for the latest session. Requests are paced by a
// token bucket and successful answers are reused for a short TTL.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	cached   []f1api.Driver
	cachedAt time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger upstream failures are written to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInterval sets the minimum spacing between upstream requests.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// WithCacheTTL sets how long a driver list is reused. Zero disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.ttl = d
		}
	}
}

// NewClient builds a Client for the OpenF1 base URL, e.g. https://api.openf1.org/v1.
func NewClient(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("openf1_api_base is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse openf1_api_base %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("openf1_api_base %q: must be an absolute http(s) URL", base)
	}
	c := &Client{
		base:    u,
		http:    &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Every(defaultInterval), 1),
		logger:  zap.NewNop(),
		ttl:     defaultCacheTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type rawDriver struct {
	DriverNumber *int    `json:"driver_number"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	TeamName     *string `json:"team_name"`
	TeamColour   *string `json:"team_colour"`
	CountryCode  *string `json:"country_code"`
	HeadshotURL  *string `json:"headshot_url"`
}

// Drivers returns the latest session's drivers, one entry per car number,
// in the order OpenF1 lists them.
func (c *Client) Drivers(ctx context.Context) ([]f1api.Driver, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if drivers, ok := c.fromCache(); ok {
		return drivers, nil
	}

	u := c.base.JoinPath("drivers")
	u.RawQuery = url.Values{"session_key": []string{latestSession}}.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.fail(&f1api.FetchError{Kind: f1api.KindNetwork, Resource: "openf1 drivers", Err: err}, u)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(&f1api.FetchError{Kind: f1api.KindNetwork, Resource: "openf1 drivers", Err: err}, u)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&f1api.FetchError{Kind: f1api.KindStatus, Resource: "openf1 drivers", Status: resp.StatusCode}, u)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(&f1api.FetchError{Kind: f1api.KindNetwork, Resource: "openf1 drivers", Status: resp.StatusCode, Err: err}, u)
	}
	var raw []rawDriver
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, c.fail(&f1api.FetchError{Kind: f1api.KindShape, Resource: "openf1 drivers", Status: resp.StatusCode, Err: err}, u)
	}

	drivers := normalize(raw)
	c.store(drivers)
	c.logger.Debug("openf1 drivers fetched", zap.Int("count", len(drivers)))
	return clone(drivers), nil
}

// normalize fills defaults for null fields and keeps the first record for
// each driver number.
func normalize(raw []rawDriver) []f1api.Driver {
	seen := make(map[int]bool, len(raw))
	out := make([]f1api.Driver, 0, len(raw))
	for _, r := range raw {
		if r.DriverNumber == nil {
			continue
		}
		if seen[*r.DriverNumber] {
			continue
		}
		seen[*r.DriverNumber] = true
		out = append(out, f1api.Driver{
			Number:      *r.DriverNumber,
			FirstName:   deref(r.FirstName),
			LastName:    deref(r.LastName),
			TeamName:    deref(r.TeamName),
			TeamColour:  teamColour(deref(r.TeamColour)),
			CountryCode: deref(r.CountryCode),
			HeadshotURL: deref(r.HeadshotURL),
		})
	}
	return out
}

// teamColour returns a "#rrggbb" colour. OpenF1 serves the hex digits
// without the leading '#'.
func teamColour(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return defaultTeamColour
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func (c *Client) fromCache() ([]f1api.Driver, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil || c.now().Sub(c.cachedAt) >= c.ttl {
		return nil, false
	}
	return clone(c.cached), true
}

func (c *Client) store(drivers []f1api.Driver) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.cached = clone(drivers)
	c.cachedAt = c.now()
	c.mu.Unlock()
}

func clone(in []f1api.Driver) []f1api.Driver {
	out := make([]f1api.Driver, len(in))
	copy(out, in)
	return out
}

func (c *Client) fail(fe *f1api.FetchError, u *url.URL) error {
	fields := []zap.Field{
		zap.String("resource", fe.Resource),
		zap.Stringer("kind", fe.Kind),
		zap.String("url", u.String()),
	}
	if fe.Status != 0 {
		fields = append(fields, zap.Int("status", fe.Status))
	}
	if fe.Err != nil {
		fields = append(fields, zap.Error(fe.Err))
	}
	c.logger.Warn("upstream fetch failed", fields...)
	return fe
}
