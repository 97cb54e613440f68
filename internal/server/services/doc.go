// Package services holds the CivicHub backend business logic: account
// sign-in and registration, the community records (profiles, complaints,
// notices, visitors, payments) and presigned avatar uploads. Services sit on
// top of the repositories vended by repomanager and return the sentinel
// errors from package common so transports can map them to status codes.
package services
