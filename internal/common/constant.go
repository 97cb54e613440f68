// Package common contains shared constants and sentinel errors used across
// CivicHub components.
package common

// TokenStorageKey is the fixed key the client persists its credential under.
const TokenStorageKey = "civichub.token"

// AuthorizationHeaderName carries the bearer token on REST requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// UnitNotAvailable is the placeholder unit number for profiles created
// without one.
const UnitNotAvailable = "N/A"
