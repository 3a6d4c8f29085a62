// Package validate holds the field-level business rules checked before
// any store mutation. Checks return a list of field errors instead of
// failing fast so callers can surface every problem at once.
package validate

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the outcome of a validation pass. Empty means the input is
// acceptable.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error and returns the extended list.
func (e Errors) Add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

func requireString(errs Errors, field, value string) Errors {
	if strings.TrimSpace(value) == "" {
		return errs.Add(field, "is required")
	}
	return errs
}

func requireDate(errs Errors, field, value string) Errors {
	if strings.TrimSpace(value) == "" {
		return errs.Add(field, "is required")
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return errs.Add(field, "must be a date in YYYY-MM-DD format")
	}
	return errs
}

// ParseDate parses a value previously accepted by requireDate.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
