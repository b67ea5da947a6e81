package rooms

import (
	"time"

	"royalstay/internal/pricing"

	"github.com/google/uuid"
)

// Room is a bookable room type with its tariff and inventory
type Room struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string           `gorm:"type:varchar(120);not null" json:"name"`
	Slug           string           `gorm:"type:varchar(140);uniqueIndex;not null" json:"slug"`
	Category       pricing.Category `gorm:"type:varchar(30);index;not null" json:"category"`
	Description    string           `gorm:"type:text" json:"description"`
	NightlyRate    float64          `gorm:"not null" json:"nightly_rate"`
	BreakfastRate  *float64         `json:"breakfast_rate,omitempty"`
	TotalRooms     int              `gorm:"not null" json:"total_rooms"`
	AvailableRooms int              `gorm:"not null" json:"available_rooms"`
	IsAvailable    bool             `gorm:"default:true" json:"is_available"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName sets the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// RateInfo is everything the pricing flow needs to know about a room
type RateInfo struct {
	RoomID             uuid.UUID        `json:"room_id"`
	Name               string           `json:"name"`
	Category           pricing.Category `json:"category"`
	NightlyRate        float64          `json:"nightly_rate"`
	BreakfastRate      *float64         `json:"breakfast_rate,omitempty"`
	AvailableRoomCount int              `json:"available_room_count"`
	IsAvailable        bool             `json:"is_available"`
}

// RateInfo projects the room onto the fields used for pricing
func (r *Room) RateInfo() *RateInfo {
	return &RateInfo{
		RoomID:             r.ID,
		Name:               r.Name,
		Category:           r.Category,
		NightlyRate:        r.NightlyRate,
		BreakfastRate:      r.BreakfastRate,
		AvailableRoomCount: r.AvailableRooms,
		IsAvailable:        r.IsAvailable,
	}
}
