package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeRider  UserType = "rider"
	UserTypeDriver UserType = "driver"
)

// User is the rider/driver reference table. Identity management lives
// outside this service; rides only read it to resolve references.
type User struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	Username    string         `json:"username" gorm:"column:username;unique;not null"`
	Email       string         `json:"email" gorm:"column:email;unique;not null"`
	PhoneNumber string         `json:"phone_number" gorm:"column:phone_number"`
	UserType    string         `json:"user_type" gorm:"column:user_type;not null;default:'rider'"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
