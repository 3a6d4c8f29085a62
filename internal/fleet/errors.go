package fleet

import (
	"errors"
	"fmt"

	"fleet-service/internal/validate"
)

// Sentinel errors returned by the record service. Handlers map these to
// HTTP status codes; nothing else crosses the service boundary.
var (
	// ErrDenied means the actor's role does not permit the operation.
	ErrDenied = errors.New("operation not permitted")

	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a unique constraint fired at commit time even
	// though the pre-check passed. Treated as a race outcome.
	ErrConflict = errors.New("record conflicts with existing data")

	// ErrPersistence covers store-level faults such as lost connectivity.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidCredentials is returned by Authenticate for a bad
	// username/password pair, without revealing which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries the full list of field problems so callers can
// present all of them at once.
type ValidationError struct {
	Fields validate.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func validationFailed(errs validate.Errors) error {
	return &ValidationError{Fields: errs}
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
