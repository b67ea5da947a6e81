package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the inventory and lookup constraints AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	statements := []string{
		// Available inventory can never go negative or exceed the room's stock
		`ALTER TABLE rooms DROP CONSTRAINT IF EXISTS chk_rooms_inventory`,
		`ALTER TABLE rooms ADD CONSTRAINT chk_rooms_inventory
			CHECK (available_rooms >= 0 AND available_rooms <= total_rooms)`,

		// Checkout sweep scans confirmed bookings by check-out date
		`CREATE INDEX IF NOT EXISTS idx_bookings_status_check_out
			ON bookings (status, check_out)`,

		// Per-customer promo limits count redemptions by promo and customer
		`CREATE INDEX IF NOT EXISTS idx_promo_redemptions_promo_customer
			ON promo_redemptions (promo_code_id, customer_id)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
