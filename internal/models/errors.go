package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmptyQuery    = NewValidationError("empty_query", "search query is empty")
	ErrInvalidEmail  = NewValidationError("invalid_email", "email address is invalid")
	ErrEmptyName     = NewValidationError("empty_name", "name is empty")
	ErrInvalidRaceID = NewValidationError("invalid_race_id", "race id is empty")
)

// ValidationError is raised before any request is sent
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Code, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
	}
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
