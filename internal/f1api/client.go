package f1api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher defines the remote operations the TUI depends on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	SearchDrivers(ctx context.Context, query string) ([]Driver, error)
	FetchCircuits(ctx context.Context) ([]Circuit, error)
	FetchTracks(ctx context.Context) ([]Track, error)
	FetchRaces(ctx context.Context) ([]Race, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Endpoints are the base URLs of the three data services.
type Endpoints struct {
	DriverAPIBase  string
	CircuitAPIBase string
	ResultsAPIBase string
}

// Client talks to the driver search service, the circuit directory and the
// results service.
type Client struct {
	driverBase  *url.URL
	circuitBase *url.URL
	resultsBase *url.URL
	http        *http.Client
	userAgent   string
	logger      *zap.Logger
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

// WithLogger sets the diagnostic logger failures are written to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

const (
	defaultUserAgent = "f1nalyzer/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 8 << 20
	circuitPageLimit = "100"
)

// NewClient builds a Client for the given endpoints.
func NewClient(ep Endpoints, opts ...Option) (*Client, error) {
	driverBase, err := parseBaseURL("driver_api_base", ep.DriverAPIBase)
	if err != nil {
		return nil, err
	}
	circuitBase, err := parseBaseURL("circuit_api_base", ep.CircuitAPIBase)
	if err != nil {
		return nil, err
	}
	resultsBase, err := parseBaseURL("results_api_base", ep.ResultsAPIBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		driverBase:  driverBase,
		circuitBase: circuitBase,
		resultsBase: resultsBase,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchDrivers asks the driver search service for drivers matching query.
// An empty result is not an error.
func (c *Client) SearchDrivers(ctx context.Context, query string) ([]Driver, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	u := c.driverBase.JoinPath("drivers", "search")
	u.RawQuery = url.Values{"name": []string{query}}.Encode()
	var drivers []Driver
	if err := c.getList(ctx, "drivers", u, driversPath, &drivers, false); err != nil {
		return nil, err
	}
	if drivers == nil {
		drivers = []Driver{}
	}
	return drivers, nil
}

// FetchCircuits retrieves the circuit directory. An empty table is reported
// as KindEmpty so callers can fall back.
func (c *Client) FetchCircuits(ctx context.Context) ([]Circuit, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	u := c.circuitBase.JoinPath("circuits.json")
	u.RawQuery = url.Values{"limit": []string{circuitPageLimit}}.Encode()
	var circuits []Circuit
	if err := c.getList(ctx, "circuits", u, circuitsPath, &circuits, true); err != nil {
		return nil, err
	}
	return circuits, nil
}

// FetchTracks retrieves the track list from the driver search service.
func (c *Client) FetchTracks(ctx context.Context) ([]Track, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var tracks []Track
	if err := c.getList(ctx, "tracks", c.driverBase.JoinPath("tracks"), tracksPath, &tracks, true); err != nil {
		return nil, err
	}
	return tracks, nil
}

// FetchRaces retrieves race results. A race may carry zero results and an
// empty race list is not an error.
func (c *Client) FetchRaces(ctx context.Context) ([]Race, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var races []Race
	if err := c.getList(ctx, "races", c.resultsBase.JoinPath("races"), racesPath, &races, false); err != nil {
		return nil, err
	}
	if races == nil {
		races = []Race{}
	}
	return races, nil
}

// Health pings the driver search service.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	u := c.driverBase.JoinPath("health")
	resp, err := c.get(ctx, u)
	if err != nil {
		return c.fail(&FetchError{Kind: KindNetwork, Resource: "health", Err: err}, u)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(&FetchError{Kind: KindStatus, Resource: "health", Status: resp.StatusCode}, u)
	}
	return nil
}

func (c *Client) getList(ctx context.Context, resource string, u *url.URL, path string, dest any, emptyIsError bool) error {
	resp, err := c.get(ctx, u)
	if err != nil {
		return c.fail(&FetchError{Kind: KindNetwork, Resource: resource, Err: err}, u)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(&FetchError{Kind: KindStatus, Resource: resource, Status: resp.StatusCode}, u)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(&FetchError{Kind: KindNetwork, Resource: resource, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}, u)
	}
	n, err := extractList(body, path, dest)
	if err == nil {
		err = checkIdentity(dest)
	}
	if err != nil {
		return c.fail(&FetchError{Kind: KindShape, Resource: resource, Status: resp.StatusCode, Err: err}, u)
	}
	if n == 0 && emptyIsError {
		return c.fail(&FetchError{Kind: KindEmpty, Resource: resource, Status: resp.StatusCode}, u)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// fail writes the failure to the diagnostic log and returns it unchanged.
func (c *Client) fail(fe *FetchError, u *url.URL) error {
	fields := []zap.Field{
		zap.String("resource", fe.Resource),
		zap.Stringer("kind", fe.Kind),
		zap.String("url", redact(u)),
	}
	if fe.Status != 0 {
		fields = append(fields, zap.Int("status", fe.Status))
	}
	if fe.Err != nil {
		fields = append(fields, zap.Error(fe.Err))
	}
	if errors.Is(fe.Err, context.Canceled) {
		c.logger.Debug("fetch cancelled", fields...)
	} else {
		c.logger.Warn("fetch failed", fields...)
	}
	return fe
}

// redact drops the query string so search terms stay out of the log.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.RawQuery = ""
	return clean.String()
}

func parseBaseURL(name, raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%s is empty", name)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s %q: scheme must be http or https", name, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%s %q: missing host", name, raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
