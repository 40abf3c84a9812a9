package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a participant is already present
	ErrConflict = errors.New("conflict: participant already present")

	// ErrParticipantNotFound is returned when removing an absent participant
	ErrParticipantNotFound = errors.New("participant not found")
)
