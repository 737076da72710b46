// Package service provides the domain facades for Backoffice. They are the
// only components the HTTP layer talks to: each facade orchestrates the
// upstream client, the mapper and the fallback store for one entity type.
package service

import "errors"

// Common service errors.
var (
	// ErrInvalidCredentials indicates a login with empty username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound indicates the session token is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput indicates a request that cannot be processed.
	ErrInvalidInput = errors.New("invalid input")
)
