package rides

import (
	"context"

	"github.com/delride/delride-backend/internal/models"
)

// RideStore is the storage gateway for ride records.
//
// ConditionalUpdate and Delete are compare-and-set writes: the assignment
// applies only if the record's status is still one of the expected values,
// evaluated atomically with the write. No two guarded writes for the same
// ride may both report a match, which is what makes first-claim-wins
// acceptance possible without locks.
type RideStore interface {
	Load(ctx context.Context, id uint) (*models.Ride, error)
	Insert(ctx context.Context, ride *models.Ride) error
	ConditionalUpdate(ctx context.Context, id uint, expected []models.RideStatus, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint, expected models.RideStatus) (bool, error)
	List(ctx context.Context, status *models.RideStatus, page, pageSize int) ([]models.Ride, int64, error)
}

// UserStore resolves rider and driver references. Read-only.
type UserStore interface {
	Exists(ctx context.Context, id uint) (bool, error)
}
