// Package state holds the client's in-memory copy of CivicHub data.
//
// Store is the single source of truth for rendering. It is mutated only
// through reducer-style methods per entity kind (SetX, PrependX, UpdateX,
// ReconcileX, RemoveX) and read through copies, so callers never share
// backing arrays with the store. Snapshots are deep copies and can be
// restored verbatim for rollback.
//
// The store is safe for concurrent use: reconciliation of background writes
// happens on other goroutines than the one issuing mutations.
package state
