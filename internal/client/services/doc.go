// Package services is the CivicHub client's application layer.
//
// AuthService bridges remote sessions to a local identity, DataService loads
// collections into the state store, and MutationService applies every user
// action optimistically: the store changes first, then the remote write runs
// as a detached background task whose result only feeds reconciliation.
// Resolving a complaint is the one guarded write: it is awaited and rolled
// back on failure.
package services
