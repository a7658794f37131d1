package database

import (
	"github.com/delride/delride-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Ride{},
	)
	if err != nil {
		return err
	}

	// The status column is a closed enumeration; reject anything else at
	// the database as well.
	if db.Migrator().HasTable(&models.Ride{}) {
		db.Exec(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_status_check`)
		if err := db.Exec(`ALTER TABLE rides ADD CONSTRAINT rides_status_check CHECK (status IN ('pending', 'accepted', 'completed', 'canceled'))`).Error; err != nil {
			return err
		}

		db.Exec(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_price_check`)
		if err := db.Exec(`ALTER TABLE rides ADD CONSTRAINT rides_price_check CHECK (price >= 1000 AND price <= 1000000)`).Error; err != nil {
			return err
		}

		// An accepted or completed ride always carries its driver.
		db.Exec(`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_driver_assignment_check`)
		if err := db.Exec(`ALTER TABLE rides ADD CONSTRAINT rides_driver_assignment_check CHECK (driver_id IS NOT NULL OR status NOT IN ('accepted', 'completed'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
