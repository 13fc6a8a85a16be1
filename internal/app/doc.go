// Package app is the composition root of f1nalyzer.
//
// # Overview
//
// This package wires configuration, logging, the remote data client, the map
// preview service and user preferences into the TUI, and does the same for
// the driver search backend. Feature packages never read configuration
// themselves; everything is injected from here.
//
// # Entry Points
//
//   - Run: loads config, opens the file logger and starts the TUI (blocks)
//   - Serve: starts the driver search backend on listen_addr (blocks)
//   - CheckHealth: pings the driver search service with backoff
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> LoadConfig()        file, then F1_* env, then flags; Validate
//	       ├─────> logging.New()       JSON log file tailed by diagnostics
//	       ├─────> f1api.NewClient()   driver, circuit and results services
//	       ├─────> mapview.NewService() map previews (key optional)
//	       ├─────> prefs.Load()        theme and last panel
//	       └─────> ui.Run()            TUI (blocks)
//
// # Error Handling
//
// Invalid configuration and logger setup failures are returned from the
// entry points. Fetch failures never are: the UI turns them into fallback
// data or an in-panel message.
package app
