package rides

import "github.com/delride/delride-backend/internal/models"

// Operation names as they appear in state conflict errors.
const (
	OpModify   = "modify"
	OpAccept   = "accept"
	OpComplete = "complete"
	OpCancel   = "cancel"
	OpDelete   = "delete"
)

// transitions maps each mutating operation to the statuses it may start
// from. Legality is decided here and nowhere else; no status string is
// ever compared at a call site.
var transitions = map[string][]models.RideStatus{
	OpModify:   {models.RideStatusPending},
	OpAccept:   {models.RideStatusPending},
	OpComplete: {models.RideStatusAccepted},
	OpCancel:   {models.RideStatusPending, models.RideStatusAccepted},
	OpDelete:   {models.RideStatusPending},
}

// nextStatus is the status each transition lands in. Modify and delete do
// not change status and have no entry.
var nextStatus = map[string]models.RideStatus{
	OpAccept:   models.RideStatusAccepted,
	OpComplete: models.RideStatusCompleted,
	OpCancel:   models.RideStatusCanceled,
}

// AllowedFrom returns the statuses op may legally start from.
func AllowedFrom(op string) []models.RideStatus {
	return transitions[op]
}

// Allowed reports whether op may be applied to a ride in status.
func Allowed(op string, status models.RideStatus) bool {
	for _, s := range transitions[op] {
		if s == status {
			return true
		}
	}
	return false
}

// CheckTransition returns a StateConflictError when op is not legal for
// the ride's current status.
func CheckTransition(op string, status models.RideStatus) error {
	if Allowed(op, status) {
		return nil
	}
	return &StateConflictError{Op: op, Status: status}
}
