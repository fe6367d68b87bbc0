package repository

import "errors"

var (
	// ErrNotFound is returned when a requested ride does not exist.
	ErrNotFound = errors.New("ride not found")

	// ErrStaleStatus is returned when a conditional update finds the stored
	// status no longer matches the expected one.
	ErrStaleStatus = errors.New("ride status changed since read")

	// ErrUnavailable is returned when the store cannot be reached within the
	// operation's deadline. Callers may retry.
	ErrUnavailable = errors.New("ride store unavailable")
)
