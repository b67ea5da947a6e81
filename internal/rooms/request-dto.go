package rooms

type RoomRequest struct {
	Name           string   `json:"name" binding:"required,min=2,max=120"`
	Category       string   `json:"category" binding:"required"`
	Description    string   `json:"description" binding:"max=2000"`
	NightlyRate    float64  `json:"nightly_rate" binding:"required,gt=0"`
	BreakfastRate  *float64 `json:"breakfast_rate" binding:"omitempty,gte=0"`
	TotalRooms     int      `json:"total_rooms" binding:"required,gte=1"`
	AvailableRooms *int     `json:"available_rooms" binding:"omitempty,gte=0"`
	IsAvailable    *bool    `json:"is_available"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type RoomFilters struct {
	Category      string `form:"category"`
	AvailableOnly bool   `form:"available_only"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
