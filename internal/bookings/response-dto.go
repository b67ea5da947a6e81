package bookings

import (
	"time"

	"royalstay/internal/pricing"
	"royalstay/internal/shared/validation"
)

type BookingResponse struct {
	ID            string `json:"id"`
	BookingRef    string `json:"booking_ref"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Source        string `json:"source"`

	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone,omitempty"`

	RoomID          string `json:"room_id"`
	RoomName        string `json:"room_name"`
	Category        string `json:"category"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Nights          int    `json:"nights"`
	RoomCount       int    `json:"room_count"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	EffectiveAdults int    `json:"effective_adults"`
	Breakfast       bool   `json:"breakfast"`

	Breakdown pricing.Breakdown `json:"breakdown"`
	PromoCode string            `json:"promo_code,omitempty"`
	Discount  float64           `json:"discount"`

	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// NightOccupancy is what one room type holds on one night
type NightOccupancy struct {
	Date        string `json:"date"`
	RoomsBooked int    `json:"rooms_booked"`
	Bookings    int    `json:"bookings"`
}

type OccupancyResponse struct {
	RoomID string           `json:"room_id"`
	From   string           `json:"from"`
	To     string           `json:"to"`
	Nights []NightOccupancy `json:"nights"`
}

type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ToResponse converts a booking into its API shape. Amounts are rounded for
// display only.
func ToResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		BookingRef:      b.BookingRef,
		TransactionID:   b.TransactionID,
		Status:          b.Status.String(),
		Source:          b.Source.String(),
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		RoomID:          b.RoomID.String(),
		RoomName:        b.RoomName,
		Category:        b.Category.String(),
		CheckIn:         b.CheckIn.Format("2006-01-02"),
		CheckOut:        b.CheckOut.Format("2006-01-02"),
		Nights:          b.Nights,
		RoomCount:       b.RoomCount,
		Adults:          b.Adults,
		Children:        b.Children,
		EffectiveAdults: b.EffectiveAdults,
		Breakfast:       b.Breakfast,
		Breakdown:       b.Breakdown().Rounded(),
		PromoCode:       b.PromoCode,
		Discount:        pricing.Round(b.Discount),
		CreatedAt:       b.CreatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func toListResponse(bookings []Booking, total int64, query BookingListQuery) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToResponse(&bookings[i]))
	}
	return &BookingListResponse{
		Bookings:   out,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(total, query.Limit),
	}
}

// occupancyByNight counts the rooms each booking holds on the nights in [from, to)
func occupancyByNight(bookings []Booking, from, to time.Time) []NightOccupancy {
	var nights []NightOccupancy
	for night := from; night.Before(to); night = night.AddDate(0, 0, 1) {
		day := NightOccupancy{Date: night.Format(validation.DateLayout)}
		for i := range bookings {
			b := &bookings[i]
			if !validation.Today(b.CheckIn).After(night) && validation.Today(b.CheckOut).After(night) {
				day.RoomsBooked += b.RoomCount
				day.Bookings++
			}
		}
		nights = append(nights, day)
	}
	return nights
}
