package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.QuoteTTL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 20, cfg.Redis.PoolSize)

	rates := cfg.PricingRates()
	assert.Equal(t, 600.0, rates.ExtraGuestRate)
	assert.Equal(t, 0.06, rates.CGSTRate)
	assert.Equal(t, 0.06, rates.SGSTRate)
	assert.Equal(t, 500.0, rates.DefaultBreakfastRate)
	assert.Equal(t, 2, rates.BaseOccupancy)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EXTRA_GUEST_RATE", "750")
	t.Setenv("CGST_RATE", "0.09")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("DB_NAME", "stays")

	cfg := Load()

	assert.Equal(t, 750.0, cfg.Pricing.ExtraGuestRate)
	assert.Equal(t, 0.09, cfg.Pricing.CGSTRate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Contains(t, cfg.Database.DSN, "dbname=stays")
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SGST_RATE", "six percent")
	t.Setenv("REDIS_QUOTE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0.06, cfg.Pricing.SGSTRate)
	assert.Equal(t, 30*time.Minute, cfg.Redis.QuoteTTL)
}
