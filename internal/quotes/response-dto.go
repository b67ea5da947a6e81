package quotes

import (
	"time"

	"royalstay/internal/pricing"
)

type QuoteResponse struct {
	ID        string       `json:"id"`
	Request   QuoteRequest `json:"request"`
	RoomName  string       `json:"room_name"`
	Category  string       `json:"category"`
	Nights    int          `json:"nights"`

	Adults          int    `json:"adults"`
	ChildAges       []int  `json:"child_ages"`
	EffectiveAdults int    `json:"effective_adults"`
	CapacityNotice  string `json:"capacity_notice,omitempty"`

	Breakdown pricing.Breakdown `json:"breakdown"`
	Display   pricing.Breakdown `json:"display"`

	PromoCode     string  `json:"promo_code,omitempty"`
	PromoApplied  bool    `json:"promo_applied"`
	PromoMessage  string  `json:"promo_message,omitempty"`
	PromoDiscount float64 `json:"promo_discount"`
	PromoPending  bool    `json:"promo_pending"`

	ExpiresAt time.Time `json:"expires_at"`
}

// ToResponse flattens a quote for the booking summary panel
func ToResponse(q *Quote, promoPending bool) QuoteResponse {
	return QuoteResponse{
		ID:              q.ID,
		Request:         q.Request,
		RoomName:        q.RoomName,
		Category:        q.Category.String(),
		Nights:          q.Nights,
		Adults:          q.Capacity.Adults,
		ChildAges:       q.Capacity.ChildAges,
		EffectiveAdults: q.Capacity.EffectiveAdults,
		CapacityNotice:  q.Capacity.Notice,
		Breakdown:       q.Breakdown,
		Display:         q.Breakdown.Rounded(),
		PromoCode:       q.Promo.Code,
		PromoApplied:    q.Promo.Applied,
		PromoMessage:    q.Promo.Message,
		PromoDiscount:   pricing.Round(q.Promo.Discount()),
		PromoPending:    promoPending,
		ExpiresAt:       q.ExpiresAt,
	}
}
