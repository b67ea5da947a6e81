package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: royalstay:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_SHORT      = 6 * time.Hour    // 6 hours - for room details
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // 1 hour - for room listings
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // 15 minutes - for rate lookups
	TTL_DYNAMIC_MEDIUM    = 10 * time.Minute // 10 minutes - for user bookings
	TTL_REALTIME_SHORT    = 30 * time.Second // 30 seconds - for promo locks
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "royalstay"
)

// ================== ROOMS MODULE ==================

const (
	CACHE_KEY_ROOMS_AVAILABLE = CACHE_PREFIX + ":rooms:available"     // + :page:X:limit:Y
	CACHE_KEY_ROOM_DETAIL     = CACHE_PREFIX + ":rooms:detail:uuid:" // + room-id
	CACHE_KEY_ROOM_RATE       = CACHE_PREFIX + ":rooms:rate:uuid:"   // + room-id
)

const (
	TTL_ROOMS_AVAILABLE = TTL_SEMI_STATIC_SHORT // 1 hour
	TTL_ROOM_DETAIL     = TTL_STATIC_SHORT      // 6 hours
	TTL_ROOM_RATE       = TTL_SEMI_STATIC_QUICK // 15 minutes
)

// ================== QUOTES MODULE ==================

const (
	CACHE_KEY_QUOTE      = CACHE_PREFIX + ":quotes:"       // + quote-id
	CACHE_KEY_QUOTE_LOCK = CACHE_PREFIX + ":quotes:lock:" // + quote-id
)

const (
	TTL_QUOTE_LOCK = TTL_REALTIME_SHORT // 30 seconds
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_ROOMS_ALL = CACHE_PREFIX + ":rooms:*"
	PATTERN_INVALIDATE_USER_ALL  = CACHE_PREFIX + ":bookings:user:uuid:" // + user-id + *
)

// ================== HELPER FUNCTIONS ==================

func BuildRoomDetailKey(roomID string) string {
	return CACHE_KEY_ROOM_DETAIL + roomID
}

func BuildRoomRateKey(roomID string) string {
	return CACHE_KEY_ROOM_RATE + roomID
}

func BuildAvailableRoomsKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_ROOMS_AVAILABLE, page, limit)
}

func BuildQuoteKey(quoteID string) string {
	return CACHE_KEY_QUOTE + quoteID
}

func BuildQuoteLockKey(quoteID string) string {
	return CACHE_KEY_QUOTE_LOCK + quoteID
}

func BuildUserBookingsKey(userID string, page int) string {
	return fmt.Sprintf("%s%s:page:%d", CACHE_KEY_USER_BOOKINGS, userID, page)
}

func BuildBookingDetailKey(bookingID string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingID
}

func BuildUserBookingsPattern(userID string) string {
	return PATTERN_INVALIDATE_USER_ALL + userID + "*"
}
