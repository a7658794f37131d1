package rides

import (
	"strings"
	"testing"

	"github.com/delride/delride-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateRideInput {
	return CreateRideInput{
		RiderID:         42,
		PickupLocation:  "Del Institute",
		DropoffLocation: "Balige Market",
		Price:           15000,
	}
}

func TestValidateCreateOK(t *testing.T) {
	assert.Empty(t, validInput().validate())
}

func TestValidatePriceBounds(t *testing.T) {
	cases := []struct {
		price float64
		ok    bool
	}{
		{500, false},
		{999.99, false},
		{1000, true},
		{15000, true},
		{1000000, true},
		{1000000.01, false},
	}
	for _, tc := range cases {
		in := validInput()
		in.Price = tc.price
		errs := in.validate()
		if tc.ok {
			assert.NotContains(t, errs, "price", "price %v", tc.price)
		} else {
			assert.Contains(t, errs, "price", "price %v", tc.price)
		}
	}
}

func TestValidateLocationBounds(t *testing.T) {
	in := validInput()
	in.PickupLocation = "ab"
	in.DropoffLocation = strings.Repeat("x", 256)
	errs := in.validate()
	assert.Contains(t, errs, "pickup_location")
	assert.Contains(t, errs, "dropoff_location")

	in = validInput()
	in.PickupLocation = "abc"
	in.DropoffLocation = strings.Repeat("x", 255)
	assert.Empty(t, in.validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	in := CreateRideInput{}
	errs := in.validate()
	require.Len(t, errs, 4)
	assert.Contains(t, errs, "user_id")
	assert.Contains(t, errs, "pickup_location")
	assert.Contains(t, errs, "dropoff_location")
	assert.Contains(t, errs, "price")
}

func TestMergeValidatesOnlyMergedRecord(t *testing.T) {
	ride := &models.Ride{
		PickupLocation:  "Del Institute",
		DropoffLocation: "Balige Market",
		Price:           15000,
		Status:          models.RideStatusPending,
	}

	price := 500.0
	in := UpdateRideInput{Price: &price}
	merged := *ride
	fields := in.merge(&merged)

	require.Contains(t, fields, "price")
	errs := validateRideFields(&merged)
	assert.Contains(t, errs, "price")
	assert.NotContains(t, errs, "pickup_location")

	// The original record is untouched by the merge.
	assert.Equal(t, 15000.0, ride.Price)
}

func TestMergeRoundsPrice(t *testing.T) {
	price := 1234.5678
	in := UpdateRideInput{Price: &price}
	merged := models.Ride{PickupLocation: "abc", DropoffLocation: "def", Price: 2000}
	fields := in.merge(&merged)
	assert.Equal(t, 1234.57, fields["price"])
	assert.Equal(t, 1234.57, merged.Price)
}
