package hierarchy

import (
	"errors"
	"fmt"
)

// ValidationError is the only failure class the engine produces: a bad
// field value, a missing reference, or a parent/type mismatch. The
// mutation that raised it is guaranteed not to have applied.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func validationf(format string, args ...any) error {
	return &ValidationError{err: fmt.Errorf(format, args...)}
}

// Validationf builds a ValidationError outside the engine, for callers
// that pre-validate input destined for it.
func Validationf(format string, args ...any) error {
	return validationf(format, args...)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
