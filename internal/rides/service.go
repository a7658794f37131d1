package rides

import (
	"context"

	"github.com/delride/delride-backend/internal/models"
)

// Pagination bounds for List.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// RideService orchestrates validation, the transition policy and the
// storage gateway for each lifecycle operation. Every status-changing
// write goes through the gateway's conditional update, guarded by the
// statuses the transition table allows, so a stale read can never be
// promoted into a silent overwrite.
type RideService struct {
	rides   RideStore
	users   UserStore
	arbiter *AcceptanceArbiter
}

func NewRideService(rides RideStore, users UserStore) *RideService {
	return &RideService{
		rides:   rides,
		users:   users,
		arbiter: NewAcceptanceArbiter(rides, users),
	}
}

// Create validates the input, resolves the rider reference and persists a
// new pending ride with no driver assigned.
func (s *RideService) Create(ctx context.Context, in CreateRideInput) (*models.Ride, error) {
	errs := in.validate()
	if _, taken := errs["user_id"]; !taken && in.RiderID != 0 {
		ok, err := s.users.Exists(ctx, in.RiderID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs["user_id"] = "user not found"
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	ride := &models.Ride{
		RiderID:         in.RiderID,
		PickupLocation:  in.PickupLocation,
		DropoffLocation: in.DropoffLocation,
		Price:           roundPrice(in.Price),
		Status:          models.RideStatusPending,
	}
	if err := s.rides.Insert(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

// Get returns the ride with rider and driver details attached.
func (s *RideService) Get(ctx context.Context, id uint) (*models.Ride, error) {
	return s.rides.Load(ctx, id)
}

// List returns a page of rides, newest first, optionally restricted to a
// single status.
func (s *RideService) List(ctx context.Context, statusFilter string, page, pageSize int) ([]models.Ride, int64, error) {
	var status *models.RideStatus
	if statusFilter != "" {
		st := models.RideStatus(statusFilter)
		if !st.Valid() {
			return nil, 0, &ValidationError{Fields: map[string]string{"status": "unknown status"}}
		}
		status = &st
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return s.rides.List(ctx, status, page, pageSize)
}

// Modify edits the mutable fields of a pending ride. Only supplied fields
// change; the merged record is re-validated before the guarded write.
func (s *RideService) Modify(ctx context.Context, id uint, in UpdateRideInput) (*models.Ride, error) {
	ride, err := s.rides.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(OpModify, ride.Status); err != nil {
		return nil, err
	}

	merged := *ride
	fields := in.merge(&merged)
	if errs := validateRideFields(&merged); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if len(fields) == 0 {
		return ride, nil
	}

	matched, err := s.rides.ConditionalUpdate(ctx, id, AllowedFrom(OpModify), fields)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, s.conflictFor(ctx, id, OpModify)
	}
	return s.rides.Load(ctx, id)
}

// Accept delegates the claim to the arbiter and returns the ride with the
// winning driver attached.
func (s *RideService) Accept(ctx context.Context, id, driverID uint) (*models.Ride, error) {
	if err := s.arbiter.Accept(ctx, id, driverID); err != nil {
		return nil, err
	}
	return s.rides.Load(ctx, id)
}

// Complete marks an accepted ride as completed.
func (s *RideService) Complete(ctx context.Context, id uint) (*models.Ride, error) {
	return s.transition(ctx, id, OpComplete)
}

// Cancel marks a pending or accepted ride as canceled. The driver
// assignment, if any, is kept for audit.
func (s *RideService) Cancel(ctx context.Context, id uint) (*models.Ride, error) {
	return s.transition(ctx, id, OpCancel)
}

// Delete removes a pending ride. The removal is guarded on the pending
// status the same way status changes are.
func (s *RideService) Delete(ctx context.Context, id uint) error {
	ride, err := s.rides.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := CheckTransition(OpDelete, ride.Status); err != nil {
		return err
	}
	matched, err := s.rides.Delete(ctx, id, models.RideStatusPending)
	if err != nil {
		return err
	}
	if !matched {
		return s.conflictFor(ctx, id, OpDelete)
	}
	return nil
}

// transition applies a pure status edge as one conditional write guarded
// by the statuses the transition table allows for op.
func (s *RideService) transition(ctx context.Context, id uint, op string) (*models.Ride, error) {
	ride, err := s.rides.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(op, ride.Status); err != nil {
		return nil, err
	}

	matched, err := s.rides.ConditionalUpdate(ctx, id, AllowedFrom(op), map[string]interface{}{
		"status": nextStatus[op],
	})
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, s.conflictFor(ctx, id, op)
	}
	return s.rides.Load(ctx, id)
}

// conflictFor re-reads a ride after a guarded write found no match, so the
// error reports the status that won the race. A ride deleted in between
// surfaces as not found instead.
func (s *RideService) conflictFor(ctx context.Context, id uint, op string) error {
	current, err := s.rides.Load(ctx, id)
	if err != nil {
		return err
	}
	return &StateConflictError{Op: op, Status: current.Status}
}
