package guide

import "errors"

// Common guide-data provider errors.
var (
	// ErrNotFound is returned when a market or lineup does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the provider rejects the request.
	ErrUnavailable = errors.New("guide-data provider unavailable")
)
