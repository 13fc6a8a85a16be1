// Package f1api provides the HTTP client for the Formula 1 data services.
//
// # Overview
//
// Three collaborators are consumed read-only over GET with JSON bodies:
//
//   - Driver search service (the local backend): /drivers/search, /tracks, /health
//   - Circuit directory (Ergast compatible): /circuits.json
//   - Results service: /races
//
// Every service wraps its payload in an envelope object. The client pulls the
// list out of the envelope with a JSONPath expression and decodes it into the
// typed records in types.go:
//
//	$.drivers
//	$.MRData.CircuitTable.Circuits
//	$.tracks
//	$.races
//
// # Client Usage
//
//	client, err := f1api.NewClient(f1api.Endpoints{
//		DriverAPIBase:  "http://localhost:5000/api",
//		CircuitAPIBase: "https://api.jolpi.ca/ergast/f1",
//		ResultsAPIBase: "http://localhost:5000/api",
//	}, f1api.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	drivers, err := client.SearchDrivers(ctx, "Max")
//
// # Error Handling
//
// Each request is a single attempt with a fixed 10 second timeout. Failures
// are returned as *FetchError with a Kind that keeps the cause visible to
// callers and tests:
//
//   - KindNetwork: the request never produced a response (DNS, refused, timeout, cancelled)
//   - KindStatus: a response outside 2xx
//   - KindShape: the body is not JSON or the envelope path is missing
//   - KindEmpty: a well formed envelope with zero circuits or tracks
//
// Drivers and races treat an empty list as a valid answer. An empty driver
// query fails with ErrEmptyQuery before any request is issued.
//
// Every failure is written to the zap logger passed with WithLogger. Logging
// never changes what the caller receives.
//
// # Fallback
//
// The client never substitutes data. The fallback package decides when a
// failed circuit or track fetch is replaced by the embedded seed.
package f1api
