package usecase

import (
	"errors"
	"strings"
)

var (
	// ErrLeadNotFound is returned when no lead has the requested ID.
	ErrLeadNotFound = errors.New("Lead not found")

	// ErrLeadEmailExists is returned when another lead already uses the email.
	ErrLeadEmailExists = errors.New("Lead with this email already exists")
)

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected field of a lead or a list query.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns e when it holds field errors, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
