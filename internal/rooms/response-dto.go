package rooms

type RoomListResponse struct {
	Rooms      []Room `json:"rooms"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
