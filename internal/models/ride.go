package models

import (
	"time"

	"gorm.io/gorm"
)

// RideStatus is the closed set of lifecycle states a ride can be in.
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCanceled  RideStatus = "canceled"
)

// Valid reports whether s is one of the known statuses.
func (s RideStatus) Valid() bool {
	switch s {
	case RideStatusPending, RideStatusAccepted, RideStatusCompleted, RideStatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no transition leads out of s.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCanceled
}

// Ride represents a transport request moving through the lifecycle
// pending -> accepted -> completed, with cancel reachable from the first
// two states. DriverID stays nil until a successful accept and is never
// reassigned afterwards; a canceled ride keeps its last assignment.
type Ride struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	RiderID         uint           `json:"user_id" gorm:"column:user_id;not null;index"`
	DriverID        *uint          `json:"driver_id" gorm:"column:driver_id"`
	PickupLocation  string         `json:"pickup_location" gorm:"not null"`
	DropoffLocation string         `json:"dropoff_location" gorm:"not null"`
	Price           float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Status          RideStatus     `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	Rider           *User          `json:"user,omitempty" gorm:"foreignKey:RiderID"`
	Driver          *User          `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

// TableName specifies the table name
func (Ride) TableName() string {
	return "rides"
}
