// Package repositories groups the Postgres repositories for the CivicHub
// schema. The backend uses them behind its HTTP API and the client's
// hosted-database gateway binding uses them directly.
package repositories
