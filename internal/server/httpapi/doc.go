// Package httpapi is the CivicHub REST API served to the client's rest
// binding. Every route lives under /api, speaks JSON and reports failures
// as {"message": "..."} with a status code the client maps back to its
// gateway errors (401/403 unauthorized, 404 not found, 409 conflict,
// 5xx unavailable).
package httpapi
