package travel

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the platform rejected the bearer token.
	ErrUnauthorized = errors.New("travel: unauthorized")
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("travel: not found")
)

// OperationError is a create/update/delete/list failure reported by the
// booking platform. The console surfaces its message to the operator and
// reverts any optimistic local state; it never retries.
type OperationError struct {
	Op      string // e.g. "flights.create"
	Status  int    // HTTP status, 0 when the request never completed
	Message string
}

func (e *OperationError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("travel: %s failed (%d): %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("travel: %s failed: %s", e.Op, e.Message)
}

// IsOperationError reports whether err (or anything it wraps) is an
// OperationError.
func IsOperationError(err error) bool {
	var oe *OperationError
	return errors.As(err, &oe)
}
