package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodGet, "/api/v1/admin/bookings", RateLimitTypeAdmin},
		{http.MethodPost, "/api/v1/quotes/:id/promo", RateLimitTypePromo},
		{http.MethodDelete, "/api/v1/quotes/:id/promo", RateLimitTypePromo},
		{http.MethodPut, "/api/v1/quotes/:id", RateLimitTypeQuote},
		{http.MethodPost, "/api/v1/bookings", RateLimitTypeBooking},
		{http.MethodGet, "/api/v1/rooms/:id", RateLimitTypePublic},
		{http.MethodGet, "", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, getRateLimitType(tt.method, tt.path), tt.method+" "+tt.path)
	}
}

func TestIsAllowedSkipsRedisWhenDisabledOrWhitelisted(t *testing.T) {
	cfg := &Config{WindowDuration: time.Minute, PromoRequests: 10, WhitelistedIPs: []string{"10.0.0.1"}}
	limiter := NewRateLimiter(nil, cfg)

	res, err := limiter.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypePromo)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 10, res.Limit)

	cfg.Enabled = true
	res, err = limiter.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypePromo)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 10, res.Remaining)
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"garbage falls back", map[string]string{"X-Forwarded-For": "nope"}, "192.0.2.1"},
		{"remote addr", nil, "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}
