package bookings

import "royalstay/internal/quotes"

// ConfirmBookingRequest turns a priced quote into a booking
type ConfirmBookingRequest struct {
	QuoteID       string `json:"quote_id" binding:"required" validate:"required"`
	GuestName     string `json:"guest_name" binding:"required" validate:"required,max=120"`
	GuestEmail    string `json:"guest_email" binding:"required" validate:"required,email"`
	GuestPhone    string `json:"guest_phone" validate:"omitempty,max=20"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=30"`
}

// AdminBookingRequest is the admin booking form. The stay is priced with the
// same calculator as the customer flow.
type AdminBookingRequest struct {
	Stay       quotes.QuoteRequest `json:"stay"`
	UserID     string              `json:"user_id" validate:"omitempty,max=64"`
	GuestName  string              `json:"guest_name" validate:"required,max=120"`
	GuestEmail string              `json:"guest_email" validate:"required,email"`
	GuestPhone string              `json:"guest_phone" validate:"omitempty,max=20"`
	PromoCode  string              `json:"promo_code" validate:"omitempty,max=40"`
	Notes      string              `json:"notes" validate:"omitempty,max=1000"`
}

// OccupancyQuery asks for the rooms held on each night from From up to,
// but not including, To
type OccupancyQuery struct {
	RoomID string `form:"room_id" json:"room_id" validate:"required,uuid"`
	From   string `form:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To     string `form:"to" json:"to" validate:"required,datetime=2006-01-02,stayafter=From"`
}

// BookingListQuery filters booking listings
type BookingListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status"`
	Source   string `form:"source"`
	RoomID   string `form:"room_id"`
	Search   string `form:"search"`
	DateFrom string `form:"date_from"` // check-in on or after, YYYY-MM-DD
	DateTo   string `form:"date_to"`   // check-in on or before, YYYY-MM-DD
}

func (q *BookingListQuery) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}
