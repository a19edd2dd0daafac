package domain

import "errors"

var (
	// ErrInvalidQuery marks caller input that cannot be served.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotFound marks a missing board entry.
	ErrNotFound = errors.New("not found")
	// ErrUpstream wraps any failure of the routing provider or alert feed.
	ErrUpstream = errors.New("upstream failure")
)
