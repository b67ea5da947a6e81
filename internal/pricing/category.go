package pricing

import "strings"

// Category is the room category that drives occupancy and surcharge rules.
type Category string

const (
	CategoryRoyalDeluxe    Category = "ROYAL_DELUXE"
	CategoryRoyalExecutive Category = "ROYAL_EXECUTIVE"
	CategoryRoyalSuite     Category = "ROYAL_SUITE"
	CategoryStandard       Category = "STANDARD"
)

// Occupancy limits per category.
const (
	deluxeMaxAdults    = 1
	executiveMaxAdults = 3
	suiteMaxAdults     = 4
	standardMaxAdults  = 10

	// MaxChildren is the largest number of children a single stay may carry.
	MaxChildren = 6
	// MaxChildAge is the oldest age still treated as a child.
	MaxChildAge = 17
	// ChildAdultAge is the age above which a child counts as an adult for capacity.
	ChildAdultAge = 7
)

// ParseCategory maps a free-form category name onto a known Category.
// "Royal Deluxe", "royal-deluxe" and "ROYAL_DELUXE" are all accepted;
// anything unrecognised falls back to CategoryStandard.
func ParseCategory(name string) Category {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch Category(normalized) {
	case CategoryRoyalDeluxe, CategoryRoyalExecutive, CategoryRoyalSuite:
		return Category(normalized)
	}
	return CategoryStandard
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRoyalDeluxe, CategoryRoyalExecutive, CategoryRoyalSuite, CategoryStandard:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// MaxAdults returns the maximum number of effective adults for the category.
func (c Category) MaxAdults() int {
	switch c {
	case CategoryRoyalDeluxe:
		return deluxeMaxAdults
	case CategoryRoyalExecutive:
		return executiveMaxAdults
	case CategoryRoyalSuite:
		return suiteMaxAdults
	default:
		return standardMaxAdults
	}
}

// AllowsChildren reports whether children may stay in the category.
func (c Category) AllowsChildren() bool {
	return c != CategoryRoyalDeluxe
}

// ChargesExtraGuests reports whether the extra guest surcharge can apply.
func (c Category) ChargesExtraGuests() bool {
	return c != CategoryRoyalDeluxe
}
