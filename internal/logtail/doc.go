// Package logtail reads the tail of the diagnostic log for display in the TUI.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries, so memory stays at
// O(maxLines) regardless of file size. A missing file yields nil, nil.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Formatting
//
// The diagnostic log is zap JSON. Format turns each line into a compact
// single line for the overlay:
//
//	{"level":"warn","ts":"2025-10-08T21:01:05.123+0000","msg":"fetch failed","resource":"circuits"}
//	21:01:05 WARN fetch failed resource=circuits
//
// Extra fields are sorted by key. caller and stacktrace are dropped. Lines
// that are not JSON objects pass through unchanged.
package logtail
