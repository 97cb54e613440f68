package gateway

import "errors"

var (
	// ErrUnavailable means the backend could not be reached: a transport
	// failure, a dead database connection or an open breaker.
	ErrUnavailable      = errors.New("backend unavailable")
	// ErrServer means the backend was reached but failed the request (5xx or
	// a database error).
	ErrServer           = errors.New("server error")
	// ErrResponseTooLarge is returned when a reply body exceeds the read limit.
	ErrResponseTooLarge = errors.New("response too large")

	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInvalidResponse = errors.New("invalid response")
)
