package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/f1nalyzer/internal/f1api"
)

type failingSource struct{}

func (failingSource) Drivers(context.Context) ([]f1api.Driver, error) {
	return nil, &f1api.FetchError{Kind: f1api.KindStatus, Resource: "openf1 drivers", Status: 503}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, NewRouter(SampleDrivers{}, nil), "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestDriverSearch_RequiresName(t *testing.T) {
	h := NewRouter(SampleDrivers{}, nil)
	for _, target := range []string{"/api/drivers/search", "/api/drivers/search?name=", "/api/drivers/search?name=%20%20"} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.JSONEq(t, `{"error":"Name parameter is required"}`, rec.Body.String(), target)
	}
}

func TestDriverSearch_FiltersSampleRoster(t *testing.T) {
	rec := get(t, NewRouter(SampleDrivers{}, nil), "/api/drivers/search?name=max")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env f1api.DriversEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Drivers, 1)
	require.Equal(t, "Verstappen", env.Drivers[0].LastName)
	require.Equal(t, 1, env.Drivers[0].Number)
}

func TestDriverSearch_NoMatchIsEmptyList(t *testing.T) {
	rec := get(t, NewRouter(SampleDrivers{}, nil), "/api/drivers/search?name=zzz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"drivers":[]}`, rec.Body.String())
}

func TestDriverSearch_UpstreamFailureIsEmptyListAndLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rec := get(t, NewRouter(failingSource{}, zap.New(core)), "/api/drivers/search?name=Lewis")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"drivers":[]}`, rec.Body.String())
	require.Equal(t, 1, logs.FilterMessage("driver search upstream failed").Len())
}

func TestTracksAndRaces(t *testing.T) {
	h := NewRouter(SampleDrivers{}, nil)

	rec := get(t, h, "/api/tracks")
	require.Equal(t, http.StatusOK, rec.Code)
	var tracks f1api.TracksEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tracks))
	require.Len(t, tracks.Tracks, 4)

	rec = get(t, h, "/api/races")
	require.Equal(t, http.StatusOK, rec.Code)
	var races f1api.RacesEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &races))
	require.Len(t, races.Races, 2)
	require.NotEmpty(t, races.Races[0].Results)
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	rec := get(t, NewRouter(SampleDrivers{}, nil), "/api/health")
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterServedByFetchClient(t *testing.T) {
	srv := httptest.NewServer(NewRouter(SampleDrivers{}, nil))
	defer srv.Close()

	client, err := f1api.NewClient(f1api.Endpoints{
		DriverAPIBase:  srv.URL + "/api",
		CircuitAPIBase: srv.URL + "/ergast",
		ResultsAPIBase: srv.URL + "/api",
	})
	require.NoError(t, err)

	ctx := context.Background()
	drivers, err := client.SearchDrivers(ctx, "Charles")
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "Leclerc", drivers[0].LastName)

	tracks, err := client.FetchTracks(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 4)

	races, err := client.FetchRaces(ctx)
	require.NoError(t, err)
	require.Len(t, races, 2)

	require.NoError(t, client.Health(ctx))
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", NewRouter(SampleDrivers{}, nil), nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	err = Run(context.Background(), ln.Addr().String(), http.NotFoundHandler(), nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, http.ErrServerClosed))
}
