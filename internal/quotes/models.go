package quotes

import (
	"time"

	"royalstay/internal/pricing"
	"royalstay/internal/promos"
)

// Quote is the priced, not yet confirmed state of a booking form. It lives
// in Redis until it expires or is turned into a booking.
type Quote struct {
	ID         string       `json:"id"`
	Request    QuoteRequest `json:"request"`
	CustomerID string       `json:"customer_id,omitempty"`
	DeviceID   string       `json:"device_id,omitempty"`

	RoomName      string           `json:"room_name"`
	Category      pricing.Category `json:"category"`
	NightlyRate   float64          `json:"nightly_rate"`
	BreakfastRate *float64         `json:"breakfast_rate,omitempty"`
	Nights        int              `json:"nights"`

	Capacity  pricing.CapacityResult `json:"capacity"`
	Breakdown pricing.Breakdown      `json:"breakdown"`
	Promo     promos.GateState       `json:"promo"`

	// ClaimedAt is set while a checkout is turning the quote into a booking
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	// Revision increases on every stored change
	Revision  uint64    `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Claimed reports whether a checkout holds the quote
func (q *Quote) Claimed() bool {
	return q.ClaimedAt != nil
}

// Stay returns the pricing input for the quote's current request
func (q *Quote) Stay(checkIn, checkOut time.Time) pricing.Stay {
	return pricing.Stay{
		Category:      q.Category,
		NightlyRate:   q.NightlyRate,
		BreakfastRate: q.BreakfastRate,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		RoomCount:     q.Request.RoomCount,
		Adults:        q.Request.Adults,
		ChildAges:     q.Request.ChildAges,
		Breakfast:     q.Request.Breakfast,
	}
}
