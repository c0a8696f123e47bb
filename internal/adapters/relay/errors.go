package relay

import (
	"errors"
	"fmt"
)

// Sentinel kinds for fetch errors.
var (
	ErrTransport  = errors.New("relay transport failed")
	ErrHTTPStatus = errors.New("relay returned non-success status")
)

// StatusError carries the status of a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrHTTPStatus, e.Code)
}

// Is matches ErrHTTPStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}
