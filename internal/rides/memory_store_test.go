package rides

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/delride/delride-backend/internal/models"
)

// memStore is an in-memory stand-in for the storage gateway. Guarded
// writes apply under one mutex, giving the same atomicity contract the
// Postgres store gets from conditional UPDATEs.
type memStore struct {
	mu    sync.Mutex
	seq   uint
	rides map[uint]*models.Ride
	users map[uint]bool
}

func newMemStore(userIDs ...uint) *memStore {
	m := &memStore{
		rides: make(map[uint]*models.Ride),
		users: make(map[uint]bool),
	}
	for _, id := range userIDs {
		m.users[id] = true
	}
	return m
}

func (m *memStore) Load(_ context.Context, id uint) (*models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rides[id]
	if !ok {
		return nil, ErrRideNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) Insert(_ context.Context, ride *models.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	ride.ID = m.seq
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = ride.CreatedAt
	cp := *ride
	m.rides[ride.ID] = &cp
	return nil
}

func (m *memStore) ConditionalUpdate(_ context.Context, id uint, expected []models.RideStatus, fields map[string]interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rides[id]
	if !ok {
		return false, nil
	}
	match := false
	for _, s := range expected {
		if r.Status == s {
			match = true
			break
		}
	}
	if !match {
		return false, nil
	}

	for col, val := range fields {
		switch col {
		case "status":
			r.Status = val.(models.RideStatus)
		case "driver_id":
			d := val.(uint)
			r.DriverID = &d
		case "pickup_location":
			r.PickupLocation = val.(string)
		case "dropoff_location":
			r.DropoffLocation = val.(string)
		case "price":
			r.Price = val.(float64)
		}
	}
	r.UpdatedAt = time.Now()
	return true, nil
}

func (m *memStore) Delete(_ context.Context, id uint, expected models.RideStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rides[id]
	if !ok || r.Status != expected {
		return false, nil
	}
	delete(m.rides, id)
	return true, nil
}

func (m *memStore) List(_ context.Context, status *models.RideStatus, page, pageSize int) ([]models.Ride, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []models.Ride
	for _, r := range m.rides {
		if status != nil && r.Status != *status {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memStore) Exists(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}
