// Package models defines the CivicHub entities shared by the client sync
// layer, the gateway bindings and the backend, together with boundary
// parsers that validate untrusted JSON before it reaches local state.
package models
