package pricing

import "fmt"

// CapacityResult is the corrected guest composition for a category.
type CapacityResult struct {
	Category        Category `json:"category"`
	RequestedAdults int      `json:"requested_adults"`
	Adults          int      `json:"adults"`
	ChildAges       []int    `json:"child_ages"`
	ChildrenOver7   int      `json:"children_over_7"`
	EffectiveAdults int      `json:"effective_adults"`
	Corrected       bool     `json:"corrected"`
	Notice          string   `json:"notice,omitempty"`
}

// Children returns the number of children kept after correction.
func (r CapacityResult) Children() int {
	return len(r.ChildAges)
}

// Resolve corrects a requested guest composition against the category rules.
//
// Royal Deluxe is a hard override to one adult and no children. Every other
// category clamps the effective adult count (adults plus children older than
// seven) to its maximum by lowering the adult count, never by dropping
// children. A notice is set whenever the requested composition was changed.
func Resolve(category Category, adults int, childAges []int) CapacityResult {
	ages := normalizeAges(childAges)
	truncated := len(childAges) > len(ages)

	result := CapacityResult{
		Category:        category,
		RequestedAdults: adults,
		Adults:          adults,
		ChildAges:       ages,
	}

	if category == CategoryRoyalDeluxe {
		result.Adults = deluxeMaxAdults
		result.ChildAges = []int{}
		result.ChildrenOver7 = 0
		result.EffectiveAdults = deluxeMaxAdults
		if adults != deluxeMaxAdults || len(childAges) > 0 {
			result.Corrected = true
			result.Notice = "Royal Deluxe rooms accommodate exactly 1 adult and no children"
		}
		return result
	}

	maxAdults := category.MaxAdults()
	over7 := CountChildrenOver7(ages)
	result.ChildrenOver7 = over7

	if adults+over7 > maxAdults {
		result.Adults = max(1, maxAdults-over7)
	}
	result.EffectiveAdults = min(maxAdults, result.Adults+over7)

	if result.Adults != adults {
		result.Corrected = true
		result.Notice = fmt.Sprintf(
			"Maximum %d adults allowed for %s (children above %d count as adults); adults reduced to %d",
			maxAdults, category, ChildAdultAge, result.Adults,
		)
	}
	if truncated {
		result.Corrected = true
		if result.Notice == "" {
			result.Notice = fmt.Sprintf("At most %d children can be added to a stay", MaxChildren)
		}
	}

	return result
}

// CountChildrenOver7 counts the children that occupy an adult place.
func CountChildrenOver7(ages []int) int {
	n := 0
	for _, age := range ages {
		if age > ChildAdultAge {
			n++
		}
	}
	return n
}

// normalizeAges copies the ages, keeps at most MaxChildren and clamps each to 0..17.
func normalizeAges(ages []int) []int {
	n := min(len(ages), MaxChildren)
	out := make([]int, 0, n)
	for _, age := range ages[:n] {
		out = append(out, min(max(age, 0), MaxChildAge))
	}
	return out
}
