package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUpload       = errors.New("upload failed")
)

// BoatLockedError is returned when a strict reservation hits an unexpired lock window.
type BoatLockedError struct {
	BoatID      uuid.UUID
	LockedUntil time.Time
}

func (e *BoatLockedError) Error() string {
	return fmt.Sprintf("boat %s is reserved until %s", e.BoatID, e.LockedUntil.Format(time.RFC3339))
}

func (e *BoatLockedError) Unwrap() error {
	return ErrConflict
}
