package activity

import "errors"

var (
	// ErrActivityNotFound indicates the activity name is not in the registry.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered indicates the student is already signed up.
	ErrAlreadyRegistered = errors.New("student is already signed up")
	// ErrNotRegistered indicates the student is not registered for the activity.
	ErrNotRegistered = errors.New("student is not registered for this activity")
	// ErrInvalidSeed indicates the startup catalog failed validation.
	ErrInvalidSeed = errors.New("invalid activity seed")
)
