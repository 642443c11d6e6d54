// Package store implements the keyed (variable, indices...) -> scalar data
// store: a base map-backed store, a defaulting wrapper (per-variable
// defaults, with a no-default set for mandatory variables), a zeroing
// access path (used by the LP planner and simulator for sparse capacity
// inputs), and a whitespace-delimited persistence adapter.
//
// Grounded on linsmat.py's DictRamDataProvider / PermissiveCsvBufferedDataProvider
// / DataInterface / ZeroingDataInterface, with the Go shape (sentinel
// errors, explicit Clone) following core/methods_clone.go's clone idiom.
package store

import "errors"

var (
	// ErrNoData indicates a (variable, indices...) key is absent from a
	// non-defaulting access path. It is the only error kind the defaulting
	// wrapper converts (to its default); the zeroing path does not tell
	// error kinds apart and returns 0.0 for this and every other lookup
	// error, an out-of-range index or unknown variable included.
	ErrNoData = errors.New("store: no data for key")

	// ErrIOError indicates a persistence-path failure (read or write).
	ErrIOError = errors.New("store: io error")
)
