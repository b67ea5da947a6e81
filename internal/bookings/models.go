package bookings

import (
	"time"

	"royalstay/internal/pricing"

	"github.com/google/uuid"
)

// Booking is a write-once snapshot of a priced stay. Nothing is derived from
// the room after confirmation; an admin edit re-runs the calculator and
// overwrites the snapshot.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef    string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"booking_ref"`
	TransactionID string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"transaction_id"`
	Status        Status    `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED', 'COMPLETED');default:'CONFIRMED';index" json:"status"`
	Source        Source    `gorm:"type:varchar(20);check:source IN ('CUSTOMER', 'ADMIN');not null" json:"source"`

	// Guest
	UserID     string `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	GuestName  string `gorm:"type:varchar(120);not null" json:"guest_name"`
	GuestEmail string `gorm:"type:varchar(255);not null" json:"guest_email"`
	GuestPhone string `gorm:"type:varchar(20)" json:"guest_phone"`
	DeviceID   string `gorm:"type:varchar(128)" json:"-"`

	// Stay
	RoomID          uuid.UUID        `gorm:"type:uuid;index;not null" json:"room_id"`
	RoomName        string           `gorm:"type:varchar(120);not null" json:"room_name"`
	Category        pricing.Category `gorm:"type:varchar(30);not null" json:"category"`
	CheckIn         time.Time        `gorm:"type:date;not null" json:"check_in"`
	CheckOut        time.Time        `gorm:"type:date;not null" json:"check_out"`
	Nights          int              `gorm:"not null" json:"nights"`
	RoomCount       int              `gorm:"not null" json:"room_count"`
	Adults          int              `gorm:"not null" json:"adults"`
	Children        int              `gorm:"not null;default:0" json:"children"`
	ChildrenOver7   int              `gorm:"not null;default:0" json:"children_over_7"`
	EffectiveAdults int              `gorm:"not null" json:"effective_adults"`
	Breakfast       bool             `gorm:"not null;default:false" json:"breakfast"`
	NightlyRate     float64          `gorm:"not null" json:"nightly_rate"`
	BreakfastRate   *float64         `json:"breakfast_rate,omitempty"`

	// Price
	RoomSubtotal        float64 `gorm:"not null" json:"room_subtotal"`
	ExtraGuestCharge    float64 `gorm:"not null" json:"extra_guest_charge"`
	BreakfastCharge     float64 `gorm:"not null" json:"breakfast_charge"`
	BasePrice           float64 `gorm:"not null" json:"base_price"`
	DiscountedBasePrice float64 `gorm:"not null" json:"discounted_base_price"`
	CGST                float64 `gorm:"column:cgst;not null" json:"cgst"`
	SGST                float64 `gorm:"column:sgst;not null" json:"sgst"`
	Total               float64 `gorm:"not null" json:"total"`
	OriginalTotal       float64 `gorm:"not null" json:"original_total"`

	PromoCodeID *uuid.UUID `gorm:"type:uuid" json:"promo_code_id,omitempty"`
	PromoCode   string     `gorm:"type:varchar(40)" json:"promo_code,omitempty"`
	Discount    float64    `gorm:"not null;default:0" json:"discount"`

	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string     `gorm:"type:varchar(64)" json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HasPromo reports whether a promo lowered the tax base
func (b *Booking) HasPromo() bool {
	return b.PromoCodeID != nil && b.Discount > 0
}

// ApplyPrice copies a capacity result and breakdown into the snapshot
func (b *Booking) ApplyPrice(capacity pricing.CapacityResult, breakdown pricing.Breakdown) {
	b.Adults = capacity.Adults
	b.Children = capacity.Children()
	b.ChildrenOver7 = capacity.ChildrenOver7
	b.EffectiveAdults = capacity.EffectiveAdults

	b.RoomSubtotal = breakdown.RoomSubtotal
	b.ExtraGuestCharge = breakdown.ExtraGuestCharge
	b.BreakfastCharge = breakdown.BreakfastCharge
	b.BasePrice = breakdown.BasePrice
	b.DiscountedBasePrice = breakdown.DiscountedBasePrice
	b.CGST = breakdown.CGST
	b.SGST = breakdown.SGST
	b.Total = breakdown.Total
	b.OriginalTotal = breakdown.OriginalTotal
	b.Discount = breakdown.BasePrice - breakdown.DiscountedBasePrice
}

// Breakdown rebuilds the price breakdown from the snapshot
func (b *Booking) Breakdown() pricing.Breakdown {
	return pricing.Breakdown{
		RoomSubtotal:        b.RoomSubtotal,
		ExtraGuestCharge:    b.ExtraGuestCharge,
		BreakfastCharge:     b.BreakfastCharge,
		BasePrice:           b.BasePrice,
		DiscountedBasePrice: b.DiscountedBasePrice,
		CGST:                b.CGST,
		SGST:                b.SGST,
		Total:               b.Total,
		OriginalTotal:       b.OriginalTotal,
	}
}
