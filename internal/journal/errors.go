package journal

import (
	"errors"
	"fmt"
)

// Common journal client errors.
var (
	// ErrUnavailable indicates the upstream could not be reached.
	ErrUnavailable = errors.New("journal upstream unavailable")
	// ErrUpstreamStatus indicates the upstream replied with a non-2xx status.
	ErrUpstreamStatus = errors.New("journal upstream returned error status")
)

// statusError carries the upstream HTTP status code.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("journal upstream returned error status: %d", e.code)
}

func (e *statusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}

// StatusError wraps ErrUpstreamStatus with the HTTP status code.
func StatusError(code int) error {
	return &statusError{code: code}
}

// StatusCode extracts the upstream status code from an error chain.
// Returns 0 if the error does not carry one.
func StatusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}
