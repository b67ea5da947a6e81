package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Nights returns the number of billable nights between check-in and
// check-out: the day difference rounded up, never less than one.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(diff) / float64(day)))
	return max(1, n)
}
