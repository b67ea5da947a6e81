package promos

import "time"

type PromoCodeRequest struct {
	Code             string     `json:"code" binding:"required,min=3,max=40"`
	Description      string     `json:"description" binding:"max=500"`
	DiscountType     string     `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue    float64    `json:"discount_value" binding:"required,gt=0"`
	MinAmount        float64    `json:"min_amount" binding:"gte=0"`
	MaxDiscount      float64    `json:"max_discount" binding:"gte=0"`
	ValidFrom        *time.Time `json:"valid_from"`
	ValidUntil       *time.Time `json:"valid_until"`
	UsageLimit       int        `json:"usage_limit" binding:"gte=0"`
	PerCustomerLimit int        `json:"per_customer_limit" binding:"gte=0"`
	Active           *bool      `json:"active"`
}

type PromoFilters struct {
	ActiveOnly bool `form:"active_only"`
	Page       int  `form:"page" binding:"omitempty,min=1"`
	Limit      int  `form:"limit" binding:"omitempty,min=1,max=100"`
}
