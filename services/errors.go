package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the services. Controllers map these onto HTTP
// status codes; anything else is treated as an infrastructure fault.
var (
	ErrNotFound     = errors.New("record not found")
	ErrJournalInUse = errors.New("journal is still referenced by publications")
	ErrInvalidRange = errors.New("start year is after end year")
	ErrExtraction   = errors.New("citation extraction failed")
)

// ValidationError reports a missing or invalid field on a write request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
