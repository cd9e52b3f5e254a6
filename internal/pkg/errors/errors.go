package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownVariant signals a trigger condition or action type outside
	// the closed set. Surfaced at load time, never at evaluation time.
	ErrUnknownVariant = errors.New("unknown variant")
)
