package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func parseID(entity, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q: %w", entity, raw, domain.ErrValidation)
	}
	return id, nil
}

// parseRef parses an ID that must point to an existing record. A malformed
// reference cannot exist, so it is reported as not found.
func parseRef(entity, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q %w", entity, raw, domain.ErrNotFound)
	}
	return id, nil
}

func validationError(validate *validator.Validate, v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return nil
}

// parseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD) or RFC3339 timestamp", domain.ErrValidation, field)
}
