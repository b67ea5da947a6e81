package bookings

// Source records which form created a booking
type Source string

const (
	SourceCustomer Source = "CUSTOMER"
	SourceAdmin    Source = "ADMIN"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceCustomer, SourceAdmin:
		return true
	}
	return false
}

func (s Source) String() string {
	return string(s)
}
