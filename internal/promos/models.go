package promos

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	return d == DiscountTypePercentage || d == DiscountTypeFixed
}

// PromoCode is an offer managed from the admin back-office
type PromoCode struct {
	ID               uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code             string       `gorm:"type:varchar(40);uniqueIndex;not null" json:"code"`
	Description      string       `gorm:"type:text" json:"description"`
	DiscountType     DiscountType `gorm:"type:varchar(20);check:discount_type IN ('PERCENTAGE', 'FIXED');not null" json:"discount_type"`
	DiscountValue    float64      `gorm:"not null" json:"discount_value"`
	MinAmount        float64      `gorm:"default:0" json:"min_amount"`
	MaxDiscount      float64      `gorm:"default:0" json:"max_discount"`
	ValidFrom        *time.Time   `json:"valid_from,omitempty"`
	ValidUntil       *time.Time   `json:"valid_until,omitempty"`
	UsageLimit       int          `gorm:"default:0" json:"usage_limit"`
	UsedCount        int          `gorm:"default:0" json:"used_count"`
	PerCustomerLimit int          `gorm:"default:0" json:"per_customer_limit"`
	Active           bool         `gorm:"default:true" json:"active"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PromoRedemption records one use of a promo code by a booking
type PromoRedemption struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PromoCodeID uuid.UUID `gorm:"type:uuid;index;not null" json:"promo_code_id"`
	BookingID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	CustomerID  string    `gorm:"type:varchar(64);index" json:"customer_id"`
	DeviceID    string    `gorm:"type:varchar(128);index" json:"device_id"`
	Discount    float64   `gorm:"not null" json:"discount"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the table name for PromoCode
func (PromoCode) TableName() string {
	return "promo_codes"
}

// TableName sets the table name for PromoRedemption
func (PromoRedemption) TableName() string {
	return "promo_redemptions"
}

// DiscountFor returns the amount the promo takes off original.
func (p *PromoCode) DiscountFor(original float64) float64 {
	var discount float64
	switch p.DiscountType {
	case DiscountTypePercentage:
		discount = original * p.DiscountValue / 100
		if p.MaxDiscount > 0 && discount > p.MaxDiscount {
			discount = p.MaxDiscount
		}
	case DiscountTypeFixed:
		discount = p.DiscountValue
	}
	if discount < 0 {
		return 0
	}
	if discount > original {
		return original
	}
	return discount
}

// IsExhausted reports whether the global usage limit is reached
func (p *PromoCode) IsExhausted() bool {
	return p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit
}

// IsActiveAt reports whether the promo is switched on and inside its window
func (p *PromoCode) IsActiveAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false
	}
	return true
}
