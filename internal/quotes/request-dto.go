package quotes

// QuoteRequest is the stay a guest is pricing. Dates are YYYY-MM-DD.
type QuoteRequest struct {
	RoomID    string `json:"room_id" validate:"required,uuid"`
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02,notpast"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02,stayafter=CheckIn"`
	RoomCount int    `json:"room_count" validate:"min=1"`
	Adults    int    `json:"adults" validate:"min=1"`
	ChildAges []int  `json:"child_ages" validate:"max=6,dive,min=0,max=17"`
	Breakfast bool   `json:"breakfast"`
}

type ApplyPromoRequest struct {
	Code     string `json:"code" binding:"required,max=40"`
	DeviceID string `json:"device_id" binding:"max=128"`
}
