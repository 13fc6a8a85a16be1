// Package ui provides the f1nalyzer terminal user interface.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model (Model) that switches between feature
// panels through the Panel enum:
//
//   - Drivers: name search against the driver search service, driver detail
//   - Circuits: circuit directory with live filtering, circuit detail and map preview
//   - Tracks: track list with search, always backed by the embedded seed on failure
//   - Results: race list and per-race classification
//   - Seasons: placeholder
//
// Every panel implements panelView (renderList, renderDetail, renderError).
// renderPanel picks one from the panel's error and selection state, so the
// presentation stays derived from state.Store snapshots and selection.State.
//
// # Package Structure
//
//   - app.go: Model, Options, key routing, panel switching and Run
//   - fetch.go: fetch commands, result messages and their handlers
//   - panel.go: Panel enum and the panelView capability set
//   - drivers.go, circuits.go, tracks.go, results.go, seasons.go: one panel each
//   - header.go: header tabs, loading spinner, source and API indicators, command bar
//   - help.go, diagnostics.go: overlays
//   - theme.go, style_helpers.go: colors and lipgloss helpers
//
// # Fetching
//
// Network calls run inside tea.Cmd functions. Each fetch is a task.Task from
// the model's tracker: starting a new fetch for a panel cancels the previous
// one, and switching panels or quitting cancels everything. A result whose
// task is no longer current is dropped and logged at debug level.
//
// A panel ignores a new trigger while its store reports Loading.
//
// # Failure Handling
//
// Circuits and tracks fall back to the embedded seed and show an advisory.
// Drivers and results show a blocking message with the failure kind beneath
// it. Nothing here terminates the program.
//
// # Key Bindings
//
// See keys.go. Press ? in the application for the full list.
package ui
