package rides

import (
	"context"

	"github.com/delride/delride-backend/internal/models"
)

// AcceptanceArbiter resolves concurrent claims on a pending ride. Exactly
// one caller wins the guarded write; every other caller observes a state
// conflict with no side effect, as if it had arrived after the winner.
type AcceptanceArbiter struct {
	rides RideStore
	users UserStore
}

func NewAcceptanceArbiter(rides RideStore, users UserStore) *AcceptanceArbiter {
	return &AcceptanceArbiter{rides: rides, users: users}
}

// Accept assigns driverID to the ride iff it is still pending. The driver
// lookup happens outside the guarded write since it does not touch ride
// state; the status check and the assignment are a single conditional
// update, so a read-then-write interleaving cannot produce two winners.
func (a *AcceptanceArbiter) Accept(ctx context.Context, rideID, driverID uint) error {
	ride, err := a.rides.Load(ctx, rideID)
	if err != nil {
		return err
	}
	if err := CheckTransition(OpAccept, ride.Status); err != nil {
		return err
	}

	if driverID == 0 {
		return &ValidationError{Fields: map[string]string{"driver_id": "driver_id is required"}}
	}
	ok, err := a.users.Exists(ctx, driverID)
	if err != nil {
		return err
	}
	if !ok {
		return &ValidationError{Fields: map[string]string{"driver_id": "driver not found"}}
	}

	matched, err := a.rides.ConditionalUpdate(ctx, rideID, AllowedFrom(OpAccept), map[string]interface{}{
		"status":    models.RideStatusAccepted,
		"driver_id": driverID,
	})
	if err != nil {
		return err
	}
	if !matched {
		// Lost the race between the read and the write. Re-read so the
		// conflict names the status that beat us; the ride may also have
		// been deleted, which surfaces as not found.
		current, err := a.rides.Load(ctx, rideID)
		if err != nil {
			return err
		}
		return &StateConflictError{Op: OpAccept, Status: current.Status}
	}
	return nil
}
