package service

import (
	"errors"
	"fmt"
)

// ValidationError reports the first business-rule violation found in a
// payload. Checking is fail-fast: one reason, surfaced to the caller
// verbatim with a client-error status.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a payload validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
