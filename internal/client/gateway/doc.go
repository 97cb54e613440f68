// Package gateway is the remote side of the CivicHub client.
//
// # Overview
//
// Gateway is a transport-agnostic contract for everything the client reads
// from or writes to the backend: sign-in and sign-up, profiles, complaints,
// notices, visitors and payments. Two bindings satisfy it:
//
//  1. RESTGateway talks JSON over HTTP to the CivicHub backend. Requests go
//     through a circuit breaker so a dead backend fails fast.
//  2. PostgresGateway talks straight to the hosted Postgres schema through
//     the shared repositories and signs its own session tokens.
//
// # Error Handling
//
// Failures are reported as sentinel errors matched with errors.Is:
// ErrUnavailable (transport failure or open breaker), ErrServer (the
// backend answered but failed the request), ErrUnauthorized, ErrNotFound,
// ErrConflict, ErrInvalidResponse (payload failed validation) and
// ErrResponseTooLarge.
//
// # Concurrency
//
// Both bindings are safe for concurrent use; the mutation engine issues
// writes from background goroutines.
package gateway
