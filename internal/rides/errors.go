package rides

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/delride/delride-backend/internal/models"
)

// ErrRideNotFound is returned when a ride id does not resolve to an
// existing record. It is checked before any status logic.
var ErrRideNotFound = errors.New("ride not found")

// ValidationError reports every violated input field, not just the first.
// The operation it came from was not applied at all.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// StateConflictError means an operation is not legal for the ride's
// current status, including the race-loser case on accept.
type StateConflictError struct {
	Op     string
	Status models.RideStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s ride in status %q", e.Op, e.Status)
}

// StorageError wraps a storage gateway fault. It is surfaced to the
// caller as an internal failure, never as a domain error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
