package database

import (
	"context"
	"errors"

	"github.com/delride/delride-backend/internal/models"
	"github.com/delride/delride-backend/internal/rides"
	"gorm.io/gorm"
)

// RideStore is the Postgres implementation of the ride storage gateway.
// Guarded writes are expressed as a single UPDATE (or DELETE) with the
// expected status in the WHERE clause; Postgres evaluates the condition
// atomically with the write, so RowsAffected is the claim arbiter.
type RideStore struct {
	db *gorm.DB
}

func NewRideStore(db *gorm.DB) *RideStore {
	return &RideStore{db: db}
}

func (s *RideStore) Load(ctx context.Context, id uint) (*models.Ride, error) {
	var ride models.Ride
	err := s.db.WithContext(ctx).
		Preload("Rider").
		Preload("Driver").
		First(&ride, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rides.ErrRideNotFound
	}
	if err != nil {
		return nil, &rides.StorageError{Op: "load", Err: err}
	}
	return &ride, nil
}

func (s *RideStore) Insert(ctx context.Context, ride *models.Ride) error {
	if err := s.db.WithContext(ctx).Create(ride).Error; err != nil {
		return &rides.StorageError{Op: "insert", Err: err}
	}
	return nil
}

func (s *RideStore) ConditionalUpdate(ctx context.Context, id uint, expected []models.RideStatus, fields map[string]interface{}) (bool, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.Ride{}).
		Where("id = ? AND status IN ?", id, expected).
		Updates(fields)
	if tx.Error != nil {
		return false, &rides.StorageError{Op: "conditional update", Err: tx.Error}
	}
	return tx.RowsAffected == 1, nil
}

func (s *RideStore) Delete(ctx context.Context, id uint, expected models.RideStatus) (bool, error) {
	tx := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, expected).
		Delete(&models.Ride{})
	if tx.Error != nil {
		return false, &rides.StorageError{Op: "delete", Err: tx.Error}
	}
	return tx.RowsAffected == 1, nil
}

func (s *RideStore) List(ctx context.Context, status *models.RideStatus, page, pageSize int) ([]models.Ride, int64, error) {
	counter := s.db.WithContext(ctx).Model(&models.Ride{})
	if status != nil {
		counter = counter.Where("status = ?", *status)
	}
	var total int64
	if err := counter.Count(&total).Error; err != nil {
		return nil, 0, &rides.StorageError{Op: "count", Err: err}
	}

	query := s.db.WithContext(ctx).
		Preload("Rider").
		Preload("Driver").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var out []models.Ride
	if err := query.Find(&out).Error; err != nil {
		return nil, 0, &rides.StorageError{Op: "list", Err: err}
	}
	return out, total, nil
}

// UserStore resolves rider and driver references against the users table.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, &rides.StorageError{Op: "user lookup", Err: err}
	}
	return count > 0, nil
}
