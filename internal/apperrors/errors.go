package apperrors

import "errors"

// Sentinel errors raised by the service layer. Handlers map these to HTTP
// status codes with errors.Is; they are never retried internally.
var (
	// ErrUnauthenticated means no actor could be resolved from the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized means the actor exists but does not own the resource.
	// Surfaced as a generic failure without naming the real owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the referenced habit or entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyCompleted is the business-rule guard for a second completion
	// of the same habit on the same calendar day. Not a system fault.
	ErrAlreadyCompleted = errors.New("habit already completed today")

	// ErrDuplicateName is returned for sub-habit name collisions under the
	// same parent habit.
	ErrDuplicateName = errors.New("name already taken")
)
