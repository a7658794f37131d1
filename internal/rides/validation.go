package rides

import (
	"fmt"
	"math"

	"github.com/delride/delride-backend/internal/models"
)

// Field bounds for ride input. Prices are minor currency units with two
// decimal places.
const (
	LocationMinLen = 3
	LocationMaxLen = 255
	PriceMin       = 1000
	PriceMax       = 1000000
)

// locationBounds is the static constraint table for the free-text fields,
// keyed by the wire name reported in validation errors.
var locationBounds = map[string]struct{ Min, Max int }{
	"pickup_location":  {LocationMinLen, LocationMaxLen},
	"dropoff_location": {LocationMinLen, LocationMaxLen},
}

// CreateRideInput holds the caller-supplied fields for a new ride.
type CreateRideInput struct {
	RiderID         uint    `json:"user_id"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	Price           float64 `json:"price"`
}

// UpdateRideInput holds a partial edit of a pending ride. Nil fields are
// left unchanged.
type UpdateRideInput struct {
	PickupLocation  *string  `json:"pickup_location"`
	DropoffLocation *string  `json:"dropoff_location"`
	Price           *float64 `json:"price"`
}

func checkLocation(field, value string, errs map[string]string) {
	b := locationBounds[field]
	switch {
	case value == "":
		errs[field] = fmt.Sprintf("%s is required", field)
	case len(value) < b.Min || len(value) > b.Max:
		errs[field] = fmt.Sprintf("%s must be between %d and %d characters", field, b.Min, b.Max)
	}
}

func checkPrice(price float64, errs map[string]string) {
	if price < PriceMin || price > PriceMax {
		errs["price"] = fmt.Sprintf("price must be between %d and %d", PriceMin, PriceMax)
	}
}

// roundPrice normalizes a price to two decimal places before it is stored.
func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

// validate collects every violated field of a new ride. Rider existence is
// checked separately by the service, against the user store.
func (in CreateRideInput) validate() map[string]string {
	errs := make(map[string]string)
	if in.RiderID == 0 {
		errs["user_id"] = "user_id is required"
	}
	checkLocation("pickup_location", in.PickupLocation, errs)
	checkLocation("dropoff_location", in.DropoffLocation, errs)
	checkPrice(in.Price, errs)
	return errs
}

// merge applies the supplied fields onto r and returns the column
// assignments for the guarded write. The merged record is re-validated by
// the caller before anything is persisted.
func (in UpdateRideInput) merge(r *models.Ride) map[string]interface{} {
	fields := make(map[string]interface{})
	if in.PickupLocation != nil {
		r.PickupLocation = *in.PickupLocation
		fields["pickup_location"] = *in.PickupLocation
	}
	if in.DropoffLocation != nil {
		r.DropoffLocation = *in.DropoffLocation
		fields["dropoff_location"] = *in.DropoffLocation
	}
	if in.Price != nil {
		p := roundPrice(*in.Price)
		r.Price = p
		fields["price"] = p
	}
	return fields
}

// validateRideFields checks the mutable fields of a merged record.
func validateRideFields(r *models.Ride) map[string]string {
	errs := make(map[string]string)
	checkLocation("pickup_location", r.PickupLocation, errs)
	checkLocation("dropoff_location", r.DropoffLocation, errs)
	checkPrice(r.Price, errs)
	return errs
}
