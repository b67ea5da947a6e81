package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Tariff defaults. Override them through Rates.
const (
	DefaultExtraGuestRate = 600.0
	DefaultCGSTRate       = 0.06
	DefaultSGSTRate       = 0.06
	DefaultBreakfastRate  = 500.0
	DefaultBaseOccupancy  = 2
)

// ErrInvalidInput is returned by Input.Validate for inputs the calculator
// would happily compute but that no booking flow should accept.
var ErrInvalidInput = errors.New("invalid pricing input")

// Rates holds the tariff constants used by the Calculator.
type Rates struct {
	ExtraGuestRate       float64 `json:"extra_guest_rate"`
	CGSTRate             float64 `json:"cgst_rate"`
	SGSTRate             float64 `json:"sgst_rate"`
	DefaultBreakfastRate float64 `json:"default_breakfast_rate"`
	BaseOccupancy        int     `json:"base_occupancy"`
}

// DefaultRates returns the standard tariff.
func DefaultRates() Rates {
	return Rates{
		ExtraGuestRate:       DefaultExtraGuestRate,
		CGSTRate:             DefaultCGSTRate,
		SGSTRate:             DefaultSGSTRate,
		DefaultBreakfastRate: DefaultBreakfastRate,
		BaseOccupancy:        DefaultBaseOccupancy,
	}
}

// Input is everything the calculator needs to price a stay.
type Input struct {
	Category        Category
	NightlyRate     float64
	BreakfastRate   *float64 // nil falls back to Rates.DefaultBreakfastRate
	Nights          int
	RoomCount       int
	Adults          int
	Children        int
	EffectiveAdults int
	Breakfast       bool

	// DiscountedBasePrice replaces BasePrice as the tax base when a promo is applied.
	DiscountedBasePrice *float64
}

// Validate rejects negative or zero quantities and rates.
func (in Input) Validate() error {
	switch {
	case in.NightlyRate <= 0:
		return fmt.Errorf("%w: nightly rate must be positive", ErrInvalidInput)
	case in.BreakfastRate != nil && *in.BreakfastRate < 0:
		return fmt.Errorf("%w: breakfast rate must not be negative", ErrInvalidInput)
	case in.Nights < 1:
		return fmt.Errorf("%w: nights must be at least 1", ErrInvalidInput)
	case in.RoomCount < 1:
		return fmt.Errorf("%w: room count must be at least 1", ErrInvalidInput)
	case in.Adults < 1:
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	case in.Children < 0:
		return fmt.Errorf("%w: children must not be negative", ErrInvalidInput)
	}
	return nil
}

// Breakdown is the derived price of a stay. Amounts are in the room's
// currency unit and are not rounded.
type Breakdown struct {
	RoomSubtotal        float64 `json:"room_subtotal"`
	ExtraGuestCharge    float64 `json:"extra_guest_charge"`
	BreakfastCharge     float64 `json:"breakfast_charge"`
	BasePrice           float64 `json:"base_price"`
	DiscountedBasePrice float64 `json:"discounted_base_price"`
	CGST                float64 `json:"cgst"`
	SGST                float64 `json:"sgst"`
	Total               float64 `json:"total"`
	OriginalTotal       float64 `json:"original_total"`
}

// Discounted reports whether a promo lowered the tax base.
func (b Breakdown) Discounted() bool {
	return b.DiscountedBasePrice < b.BasePrice
}

// Rounded returns a copy with every amount rounded to the nearest whole unit.
// Use it for presentation only.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		RoomSubtotal:        Round(b.RoomSubtotal),
		ExtraGuestCharge:    Round(b.ExtraGuestCharge),
		BreakfastCharge:     Round(b.BreakfastCharge),
		BasePrice:           Round(b.BasePrice),
		DiscountedBasePrice: Round(b.DiscountedBasePrice),
		CGST:                Round(b.CGST),
		SGST:                Round(b.SGST),
		Total:               Round(b.Total),
		OriginalTotal:       Round(b.OriginalTotal),
	}
}

// Round rounds half away from zero to a whole currency unit.
func Round(v float64) float64 {
	return math.Round(v)
}

// Calculator prices stays. It holds no state besides its rates.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a calculator for the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Rates returns the tariff in use.
func (c *Calculator) Rates() Rates {
	return c.rates
}

// Calculate computes the price breakdown of a stay.
//
//	roomSubtotal     = nightlyRate × nights × roomCount
//	extraGuestCharge = max(0, effectiveAdults − baseOccupancy) × extraGuestRate × nights
//	breakfastCharge  = breakfastRate × nights × (adults + children)
//	cgst, sgst       = rate × discountedBasePrice
//	total            = discountedBasePrice + cgst + sgst
func (c *Calculator) Calculate(in Input) Breakdown {
	nights := float64(in.Nights)

	roomSubtotal := in.NightlyRate * nights * float64(in.RoomCount)
	extraGuest := c.ExtraGuestCharge(in.Category, in.EffectiveAdults, in.Nights)
	breakfast := c.BreakfastCharge(in.Breakfast, in.BreakfastRate, in.Nights, in.Adults, in.Children)

	base := roomSubtotal + extraGuest + breakfast

	discounted := base
	if in.DiscountedBasePrice != nil && *in.DiscountedBasePrice < base {
		discounted = math.Max(0, *in.DiscountedBasePrice)
	}

	cgst, sgst := c.Taxes(discounted)
	origCGST, origSGST := c.Taxes(base)

	return Breakdown{
		RoomSubtotal:        roomSubtotal,
		ExtraGuestCharge:    extraGuest,
		BreakfastCharge:     breakfast,
		BasePrice:           base,
		DiscountedBasePrice: discounted,
		CGST:                cgst,
		SGST:                sgst,
		Total:               discounted + cgst + sgst,
		OriginalTotal:       base + origCGST + origSGST,
	}
}

// ExtraGuestCharge is zero for Royal Deluxe rooms.
func (c *Calculator) ExtraGuestCharge(category Category, effectiveAdults, nights int) float64 {
	if !category.ChargesExtraGuests() {
		return 0
	}
	extra := max(0, effectiveAdults-c.rates.BaseOccupancy)
	return float64(extra) * c.rates.ExtraGuestRate * float64(nights)
}

// BreakfastCharge counts every guest, children of any age included.
func (c *Calculator) BreakfastCharge(enabled bool, rate *float64, nights, adults, children int) float64 {
	if !enabled {
		return 0
	}
	r := c.rates.DefaultBreakfastRate
	if rate != nil {
		r = *rate
	}
	return r * float64(nights) * float64(adults+children)
}

// Taxes returns CGST and SGST for the given tax base.
func (c *Calculator) Taxes(base float64) (cgst, sgst float64) {
	return base * c.rates.CGSTRate, base * c.rates.SGSTRate
}

// Stay is a guest composition and room rate awaiting capacity resolution.
type Stay struct {
	Category            Category
	NightlyRate         float64
	BreakfastRate       *float64
	CheckIn             time.Time
	CheckOut            time.Time
	RoomCount           int
	Adults              int
	ChildAges           []int
	Breakfast           bool
	DiscountedBasePrice *float64
}

// Evaluate resolves capacity and prices the corrected stay in one step.
// Customer and admin booking flows both go through here.
func (c *Calculator) Evaluate(stay Stay) (CapacityResult, Breakdown) {
	capacity := Resolve(stay.Category, stay.Adults, stay.ChildAges)

	breakdown := c.Calculate(Input{
		Category:            stay.Category,
		NightlyRate:         stay.NightlyRate,
		BreakfastRate:       stay.BreakfastRate,
		Nights:              Nights(stay.CheckIn, stay.CheckOut),
		RoomCount:           stay.RoomCount,
		Adults:              capacity.Adults,
		Children:            capacity.Children(),
		EffectiveAdults:     capacity.EffectiveAdults,
		Breakfast:           stay.Breakfast,
		DiscountedBasePrice: stay.DiscountedBasePrice,
	})

	return capacity, breakdown
}
