// Package state holds the list state of each panel.
//
// # Overview
//
// Every panel (drivers, circuits, tracks, results) owns one Store. Fetch
// commands report back to the UI, which writes the outcome into the panel's
// store; rendering reads a Snapshot. Panels never share a store.
//
// # Update Semantics
//
//	store.Begin()                      // loading, repeated triggers ignored
//	store.Update(items, nil)           // replace list, clear error and advisory
//	store.Update(nil, err)             // empty list, blocking error
//	store.UpdateFallback(seed, msg, e) // seed list, non-blocking advisory
//	store.Abort()                      // cancelled load, data untouched
//
// Lists are replaced wholesale on every load. Entities inside them are never
// edited in place.
//
// # Defensive Copying
//
// Update copies the slice it is given and Snapshot copies the stored one, so
// neither the fetch code nor the renderer can alias the stored list.
package state
