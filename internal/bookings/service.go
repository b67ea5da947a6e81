package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"royalstay/internal/notifications"
	"royalstay/internal/pricing"
	"royalstay/internal/promos"
	"royalstay/internal/quotes"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/constants"
	"royalstay/internal/shared/validation"
	"royalstay/pkg/cache"
	"royalstay/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrForbidden          = errors.New("booking does not belong to this user")
	ErrPromoNoLongerValid = errors.New("the promo code on this quote is no longer valid, please review the quote")
)

// QuoteCheckout hands over a re-priced, claimed quote for confirmation
type QuoteCheckout interface {
	Checkout(ctx context.Context, id string) (*quotes.Quote, error)
	Release(ctx context.Context, id string) error
	Consume(ctx context.Context, id string) error
}

// RoomReader reads rooms for the admin form, which may book rooms hidden
// from customers
type RoomReader interface {
	GetRoom(ctx context.Context, idOrSlug string) (*rooms.Room, error)
	InvalidateRoom(ctx context.Context, id uuid.UUID)
}

// PromoFinder resolves a promo code to its record
type PromoFinder interface {
	GetByCode(ctx context.Context, code string) (*promos.PromoCode, error)
}

type Service interface {
	// Customer
	ConfirmBooking(ctx context.Context, userID string, req ConfirmBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID, userID string) (*BookingResponse, error)

	// Admin
	ListBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)
	CreateAdminBooking(ctx context.Context, adminID string, req AdminBookingRequest) (*BookingResponse, error)
	UpdateAdminBooking(ctx context.Context, id uuid.UUID, req AdminBookingRequest) (*BookingResponse, error)
	CancelBookingAsAdmin(ctx context.Context, id uuid.UUID) (*BookingResponse, error)
	RoomOccupancy(ctx context.Context, query OccupancyQuery) (*OccupancyResponse, error)

	// CompleteDueStays marks confirmed stays whose check-out day has come as completed
	CompleteDueStays(ctx context.Context) (int, error)
}

// Dependencies groups what the booking service talks to
type Dependencies struct {
	Repo       Repository
	Quotes     QuoteCheckout
	Rooms      RoomReader
	Promos     PromoFinder
	Validator  promos.Validator
	Calculator *pricing.Calculator
	Publisher  notifications.Publisher
	Cache      cache.Service
	Now        func() time.Time
}

type service struct {
	Dependencies
	input *validation.Validator
	log   *logger.Logger
}

func NewService(deps Dependencies) Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Publisher == nil {
		deps.Publisher = notifications.NoopPublisher{}
	}

	return &service{
		Dependencies: deps,
		input:        validation.New(deps.Now),
		log:          logger.GetDefault(),
	}
}

// ConfirmBooking turns a quote into a booking. The quote stays claimed
// from checkout until it is consumed, so it can be booked only once.
func (s *service) ConfirmBooking(ctx context.Context, userID string, req ConfirmBookingRequest) (*BookingResponse, error) {
	if err := s.input.Struct(req); err != nil {
		return nil, err
	}

	quote, err := s.Quotes.Checkout(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	booked := false
	defer func() {
		if booked {
			return
		}
		if err := s.Quotes.Release(context.WithoutCancel(ctx), req.QuoteID); err != nil {
			s.log.Warn("Failed to release quote claim", "quote_id", req.QuoteID, "error", err)
		}
	}()

	if quote.CustomerID != "" && quote.CustomerID != userID {
		return nil, ErrForbidden
	}

	roomID, err := uuid.Parse(quote.Request.RoomID)
	if err != nil {
		return nil, fmt.Errorf("quote has an invalid room id: %w", err)
	}
	checkIn, checkOut, err := stayDates(quote.Request)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:            uuid.New(),
		Status:        StatusConfirmed,
		Source:        SourceCustomer,
		UserID:        userID,
		GuestName:     strings.TrimSpace(req.GuestName),
		GuestEmail:    strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		GuestPhone:    strings.TrimSpace(req.GuestPhone),
		DeviceID:      quote.DeviceID,
		RoomID:        roomID,
		RoomName:      quote.RoomName,
		Category:      quote.Category,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        quote.Nights,
		RoomCount:     quote.Request.RoomCount,
		Breakfast:     quote.Request.Breakfast,
		NightlyRate:   quote.NightlyRate,
		BreakfastRate: quote.BreakfastRate,
		CreatedBy:     userID,
	}
	booking.ApplyPrice(quote.Capacity, quote.Breakdown)

	if quote.Promo.Applied {
		if err := s.confirmPromo(ctx, booking, quote.Promo); err != nil {
			return nil, err
		}
	}

	if err := s.stamp(booking); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	booked = true

	if err := s.Quotes.Consume(ctx, req.QuoteID); err != nil {
		s.log.Warn("Failed to remove consumed quote", "quote_id", req.QuoteID, "error", err)
	}
	s.afterChange(ctx, booking, notifications.EventTypeBookingConfirmed)
	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.RoomID.String(), userID, booking.Total)

	resp := ToResponse(booking)
	return &resp, nil
}

// confirmPromo re-validates an applied promo right before the booking is
// written. The usage limit itself is enforced again inside the transaction.
func (s *service) confirmPromo(ctx context.Context, booking *Booking, state promos.GateState) error {
	result, err := s.Validator.Validate(ctx, promos.ValidationRequest{
		Code:           state.Code,
		OriginalAmount: booking.BasePrice,
		CustomerID:     booking.UserID,
		DeviceID:       booking.DeviceID,
	})
	if err != nil {
		return fmt.Errorf("validate promo code: %w", err)
	}
	if !result.Valid || result.FinalAmount == nil || pricing.Round(*result.FinalAmount) != pricing.Round(state.DiscountedAmount) {
		return ErrPromoNoLongerValid
	}
	return s.attachPromo(ctx, booking, state.Code)
}

func (s *service) attachPromo(ctx context.Context, booking *Booking, code string) error {
	promo, err := s.Promos.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promos.ErrPromoNotFound) {
			return ErrPromoNoLongerValid
		}
		return err
	}
	booking.PromoCodeID = &promo.ID
	booking.PromoCode = promo.Code
	return nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if s.Cache == nil {
		return s.Repo.GetByID(ctx, id)
	}

	var booking Booking
	err := s.Cache.GetOrSet(ctx, constants.BuildBookingDetailKey(id.String()), constants.TTL_BOOKING_DETAIL, func() (interface{}, error) {
		return s.Repo.GetByID(ctx, id)
	}, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID string, query BookingListQuery) (*BookingListResponse, error) {
	query.normalize()

	fetch := func() (interface{}, error) {
		bookings, total, err := s.Repo.ListByUser(ctx, userID, query)
		if err != nil {
			return nil, err
		}
		return toListResponse(bookings, total, query), nil
	}

	// Only the plain "my bookings" pages are cached
	if s.Cache == nil || query.Status != "" || query.Source != "" || query.RoomID != "" || query.Search != "" || query.DateFrom != "" || query.DateTo != "" {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		return data.(*BookingListResponse), nil
	}

	var resp BookingListResponse
	key := fmt.Sprintf("%s:limit:%d", constants.BuildUserBookingsKey(userID, query.Page), query.Limit)
	if err := s.Cache.GetOrSet(ctx, key, constants.TTL_USER_BOOKINGS, fetch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, userID string) (*BookingResponse, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return s.cancel(ctx, booking)
}

func (s *service) CancelBookingAsAdmin(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking)
}

func (s *service) cancel(ctx context.Context, booking *Booking) (*BookingResponse, error) {
	if !booking.Status.CanBeCancelled() {
		return nil, ErrNotCancellable
	}

	now := s.Now().UTC()
	if err := s.Repo.Cancel(ctx, booking, now); err != nil {
		return nil, err
	}
	booking.CancelledAt = &now

	s.afterChange(ctx, booking, notifications.EventTypeBookingCancelled)
	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.RoomID.String(), booking.UserID)

	resp := ToResponse(booking)
	return &resp, nil
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	query.normalize()
	bookings, total, err := s.Repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return toListResponse(bookings, total, query), nil
}

func (s *service) CreateAdminBooking(ctx context.Context, adminID string, req AdminBookingRequest) (*BookingResponse, error) {
	if err := s.input.Struct(req); err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:        uuid.New(),
		Status:    StatusConfirmed,
		Source:    SourceAdmin,
		CreatedBy: adminID,
	}
	applyGuest(booking, req)

	if err := s.priceAdminStay(ctx, booking, nil, req); err != nil {
		return nil, err
	}
	if err := s.stamp(booking); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.afterChange(ctx, booking, notifications.EventTypeBookingConfirmed)
	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.RoomID.String(), booking.UserID, booking.Total)

	resp := ToResponse(booking)
	return &resp, nil
}

// UpdateAdminBooking re-prices a confirmed booking from the admin form
func (s *service) UpdateAdminBooking(ctx context.Context, id uuid.UUID, req AdminBookingRequest) (*BookingResponse, error) {
	previous, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !previous.IsConfirmed() {
		return nil, ErrNotEditable
	}
	if err := s.validateEdit(req, previous); err != nil {
		return nil, err
	}

	updated := *previous
	applyGuest(&updated, req)
	if err := s.priceAdminStay(ctx, &updated, previous, req); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStay(ctx, previous, &updated); err != nil {
		return nil, err
	}
	if previous.RoomID != updated.RoomID {
		s.Rooms.InvalidateRoom(ctx, previous.RoomID)
	}

	if previous.UserID != updated.UserID {
		s.invalidateUserBookings(ctx, previous.UserID)
	}

	s.afterChange(ctx, &updated, notifications.EventTypeBookingUpdated)

	resp := ToResponse(&updated)
	return &resp, nil
}

// validateEdit lets a guest who is already in-house keep the original
// check-in date
func (s *service) validateEdit(req AdminBookingRequest, previous *Booking) error {
	err := s.input.Struct(req)
	inputErr, ok := validation.AsInputError(err)
	if !ok || req.Stay.CheckIn != previous.CheckIn.Format(validation.DateLayout) {
		return err
	}
	inputErr.Remove("stay.check_in", validation.MsgPastCheckIn)
	return inputErr.OrNil()
}

// priceAdminStay runs the same capacity rules, calculator and promo gate as
// the customer flow. previous is nil for new bookings.
func (s *service) priceAdminStay(ctx context.Context, booking *Booking, previous *Booking, req AdminBookingRequest) error {
	room, err := s.Rooms.GetRoom(ctx, req.Stay.RoomID)
	if err != nil {
		return err
	}

	// rooms the booking already holds count as available
	available := room.AvailableRooms
	if previous != nil && previous.RoomID == room.ID {
		available += previous.RoomCount
	}
	if req.Stay.RoomCount > available {
		return &validation.InputError{Fields: map[string][]string{
			"stay.room_count": {fmt.Sprintf("only %d rooms are available", available)},
		}}
	}

	checkIn, checkOut, err := stayDates(req.Stay)
	if err != nil {
		return err
	}

	booking.RoomID = room.ID
	booking.RoomName = room.Name
	booking.Category = room.Category
	booking.CheckIn = checkIn
	booking.CheckOut = checkOut
	booking.Nights = pricing.Nights(checkIn, checkOut)
	booking.RoomCount = req.Stay.RoomCount
	booking.Breakfast = req.Stay.Breakfast
	booking.NightlyRate = room.NightlyRate
	booking.BreakfastRate = room.BreakfastRate

	stay := pricing.Stay{
		Category:      room.Category,
		NightlyRate:   room.NightlyRate,
		BreakfastRate: room.BreakfastRate,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		RoomCount:     req.Stay.RoomCount,
		Adults:        req.Stay.Adults,
		ChildAges:     req.Stay.ChildAges,
		Breakfast:     req.Stay.Breakfast,
	}
	capacity, breakdown := s.Calculator.Evaluate(stay)
	if capacity.Corrected {
		s.log.LogCapacityCorrected(ctx, room.ID.String(), capacity.Category.String(), capacity.RequestedAdults, capacity.Adults)
	}

	code := promos.NormalizeCode(req.PromoCode)
	booking.PromoCodeID = nil
	booking.PromoCode = ""

	if code != "" {
		discounted, err := s.adminPromo(ctx, booking, previous, code, breakdown.BasePrice)
		if err != nil {
			return err
		}
		stay.DiscountedBasePrice = &discounted
		capacity, breakdown = s.Calculator.Evaluate(stay)
		if err := s.attachPromo(ctx, booking, code); err != nil {
			return err
		}
	}

	booking.ApplyPrice(capacity, breakdown)
	return nil
}

// adminPromo returns the discounted base for code. A promo the booking
// already carries survives an edit only while the base price is unchanged.
func (s *service) adminPromo(ctx context.Context, booking, previous *Booking, code string, base float64) (float64, error) {
	if previous != nil && previous.PromoCodeID != nil && previous.PromoCode == code {
		gate := promos.RestoreGate(s.Validator, promos.GateState{
			Code:             code,
			Applied:          true,
			OriginalAmount:   previous.BasePrice,
			DiscountedAmount: previous.DiscountedBasePrice,
		})
		gate.Reprice(base)
		state := gate.State()
		if !state.Applied {
			return 0, &validation.InputError{Fields: map[string][]string{
				"promo_code": {"the stay price changed, remove the promo code or apply it again after saving"},
			}}
		}
		return state.DiscountedAmount, nil
	}

	gate := promos.NewGate(s.Validator, base)
	state, err := gate.Apply(ctx, code, booking.UserID, booking.DeviceID)
	if err != nil {
		return 0, err
	}
	if !state.Applied {
		return 0, &validation.InputError{Fields: map[string][]string{"promo_code": {state.Message}}}
	}
	return state.DiscountedAmount, nil
}

// maxOccupancyNights bounds one occupancy listing
const maxOccupancyNights = 92

func (s *service) RoomOccupancy(ctx context.Context, query OccupancyQuery) (*OccupancyResponse, error) {
	if err := s.input.Struct(query); err != nil {
		return nil, err
	}

	from, _ := validation.ParseDate(query.From)
	to, _ := validation.ParseDate(query.To)
	if pricing.Nights(from, to) > maxOccupancyNights {
		return nil, &validation.InputError{Fields: map[string][]string{
			"to": {fmt.Sprintf("must be at most %d nights after from", maxOccupancyNights)},
		}}
	}

	roomID := uuid.MustParse(query.RoomID)
	stays, err := s.Repo.ListStaysInRange(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	return &OccupancyResponse{
		RoomID: roomID.String(),
		From:   query.From,
		To:     query.To,
		Nights: occupancyByNight(stays, from, to),
	}, nil
}

func (s *service) CompleteDueStays(ctx context.Context) (int, error) {
	today := validation.Today(s.Now())
	completed := 0

	for {
		due, err := s.Repo.ListDueForCheckout(ctx, today, 100)
		if err != nil {
			return completed, err
		}
		if len(due) == 0 {
			return completed, nil
		}

		progressed := false
		for i := range due {
			booking := &due[i]
			if err := s.Repo.Complete(ctx, booking, s.Now().UTC()); err != nil {
				if errors.Is(err, ErrNotEditable) {
					// cancelled or completed concurrently
					continue
				}
				return completed, err
			}
			progressed = true
			completed++
			s.afterChange(ctx, booking, notifications.EventTypeBookingCompleted)
		}
		if !progressed || len(due) < 100 {
			return completed, nil
		}
	}
}

// afterChange drops cached views and publishes the event. Neither may fail
// the request once the booking is committed.
func (s *service) afterChange(ctx context.Context, booking *Booking, eventType notifications.EventType) {
	s.Rooms.InvalidateRoom(ctx, booking.RoomID)

	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, constants.BuildBookingDetailKey(booking.ID.String())); err != nil {
			s.log.Warn("Failed to invalidate booking cache", "booking_id", booking.ID.String(), "error", err)
		}
	}
	s.invalidateUserBookings(ctx, booking.UserID)

	event := notifications.NewBookingEvent(eventType)
	event.BookingID = booking.ID
	event.BookingRef = booking.BookingRef
	event.UserID = booking.UserID
	event.GuestName = booking.GuestName
	event.GuestEmail = booking.GuestEmail
	event.RoomID = booking.RoomID
	event.RoomName = booking.RoomName
	event.CheckIn = booking.CheckIn.Format(validation.DateLayout)
	event.CheckOut = booking.CheckOut.Format(validation.DateLayout)
	event.RoomCount = booking.RoomCount
	event.Total = pricing.Round(booking.Total)
	event.PromoCode = booking.PromoCode
	event.Source = booking.Source.String()

	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
			"type":       string(eventType),
		})
	}
}

func (s *service) invalidateUserBookings(ctx context.Context, userID string) {
	if s.Cache == nil || userID == "" {
		return
	}
	if err := s.Cache.DeletePattern(ctx, constants.BuildUserBookingsPattern(userID)); err != nil {
		s.log.Warn("Failed to invalidate user bookings cache", "user_id", userID, "error", err)
	}
}

func (s *service) stamp(booking *Booking) error {
	ref, err := s.generateBookingReference()
	if err != nil {
		return fmt.Errorf("failed to generate booking reference: %w", err)
	}
	booking.BookingRef = ref
	booking.TransactionID = s.generateTransactionID()
	return nil
}

func applyGuest(booking *Booking, req AdminBookingRequest) {
	booking.UserID = strings.TrimSpace(req.UserID)
	booking.GuestName = strings.TrimSpace(req.GuestName)
	booking.GuestEmail = strings.ToLower(strings.TrimSpace(req.GuestEmail))
	booking.GuestPhone = strings.TrimSpace(req.GuestPhone)
	booking.Notes = strings.TrimSpace(req.Notes)
}

func stayDates(req quotes.QuoteRequest) (time.Time, time.Time, error) {
	checkIn, err := validation.ParseDate(req.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, &validation.InputError{Fields: map[string][]string{"check_in": {"must be a date in YYYY-MM-DD format"}}}
	}
	checkOut, err := validation.ParseDate(req.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, &validation.InputError{Fields: map[string][]string{"check_out": {"must be a date in YYYY-MM-DD format"}}}
	}
	return checkIn, checkOut, nil
}

// generateBookingReference generates a booking reference like RS-20260601-KQWZTA
func (s *service) generateBookingReference() (string, error) {
	timestamp := s.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("RS-%s-%s", timestamp, string(randomPart)), nil
}

// generateTransactionID generates a mock transaction ID
func (s *service) generateTransactionID() string {
	shortUUID := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", s.Now().Unix(), strings.ToUpper(shortUUID))
}
