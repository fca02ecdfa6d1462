package hospital

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by System operations. Callers match with
// errors.Is; operation context is added by wrapping.
var (
	// ErrNotFound is returned when a patient, department, staff member or
	// bill key does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDepartment is returned when a department name collides.
	ErrDuplicateDepartment = errors.New("department already exists")

	// ErrInvalidTransition is returned for an illegal status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTerminalStatus is returned when a clinical mutation targets a
	// discharged or deceased patient.
	ErrTerminalStatus = errors.New("patient status is terminal")

	// ErrRoleMismatch is returned when a non-doctor is assigned as an
	// attending doctor.
	ErrRoleMismatch = errors.New("staff member is not a doctor")

	// ErrDepartmentNotEmpty is returned when removing a department that
	// still has patients assigned to its doctors.
	ErrDepartmentNotEmpty = errors.New("department has assigned patients")
)

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation returns true if err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
