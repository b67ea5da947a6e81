package database

import (
	"fmt"

	"royalstay/internal/bookings"
	"royalstay/internal/promos"
	"royalstay/internal/rooms"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	if err := db.AutoMigrate(
		&rooms.Room{},
		&promos.PromoCode{},
		&promos.PromoRedemption{},
		&bookings.Booking{},
	); err != nil {
		return err
	}

	return MigrateConstraints(db)
}
