package services

import "errors"

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrProfileUnavailable   = errors.New("profile unavailable")
	ErrNoSession            = errors.New("no stored session")
	ErrResolveFailed        = errors.New("failed to resolve complaint")
	ErrNotFound             = errors.New("not found")
	ErrNotSupported         = errors.New("not supported by this backend")
)

// ErrNoIdentity is returned by actions that need a signed-in user.
var ErrNoIdentity = errors.New("no active user")
