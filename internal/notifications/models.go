package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventTypeBookingUpdated   EventType = "BOOKING_UPDATED"
	EventTypeBookingCancelled EventType = "BOOKING_CANCELLED"
	EventTypeBookingCompleted EventType = "BOOKING_COMPLETED"
)

// BookingEvent is published after a booking change is committed. Consumers
// (guest emails, front desk dashboards) live outside this service.
type BookingEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	BookingRef string    `json:"booking_ref"`
	UserID     string    `json:"user_id,omitempty"`

	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`

	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	RoomCount int       `json:"room_count"`

	Total     float64 `json:"total"`
	PromoCode string  `json:"promo_code,omitempty"`
	Source    string  `json:"source"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent stamps an event id and time
func NewBookingEvent(eventType EventType) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// PartitionKey keeps every event of one booking on the same partition
func (e *BookingEvent) PartitionKey() string {
	return e.BookingID.String()
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
