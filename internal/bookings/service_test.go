package bookings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"royalstay/internal/notifications"
	"royalstay/internal/pricing"
	"royalstay/internal/promos"
	"royalstay/internal/quotes"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/validation"
	"royalstay/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type memoryRepo struct {
	bookings map[uuid.UUID]*Booking
	createErr error
}

func (m *memoryRepo) Create(_ context.Context, b *Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID string, _ BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryRepo) List(_ context.Context, _ BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (m *memoryRepo) UpdateStay(_ context.Context, _ *Booking, b *Booking) error {
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *memoryRepo) transition(b *Booking, to Status, notConfirmed error) error {
	stored, ok := m.bookings[b.ID]
	if !ok || stored.Status != StatusConfirmed {
		return notConfirmed
	}
	stored.Status = to
	b.Status = to
	return nil
}

func (m *memoryRepo) Cancel(_ context.Context, b *Booking, _ time.Time) error {
	return m.transition(b, StatusCancelled, ErrNotCancellable)
}

func (m *memoryRepo) Complete(_ context.Context, b *Booking, _ time.Time) error {
	return m.transition(b, StatusCompleted, ErrNotEditable)
}

func (m *memoryRepo) ListDueForCheckout(_ context.Context, day time.Time, limit int) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.Status == StatusConfirmed && !b.CheckOut.After(day) && len(out) < limit {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memoryRepo) ListStaysInRange(_ context.Context, roomID uuid.UUID, from, to time.Time) ([]Booking, error) {
	var out []Booking
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.Status != StatusCancelled && b.CheckIn.Before(to) && b.CheckOut.After(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeQuotes struct {
	quotes   map[string]*quotes.Quote
	claimed  map[string]bool
	released []string
	consumed []string
}

func (f *fakeQuotes) Checkout(_ context.Context, id string) (*quotes.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, quotes.ErrQuoteNotFound
	}
	if f.claimed[id] {
		return nil, quotes.ErrQuoteClaimed
	}
	f.claimed[id] = true
	return q, nil
}

func (f *fakeQuotes) Release(_ context.Context, id string) error {
	f.released = append(f.released, id)
	delete(f.claimed, id)
	return nil
}

func (f *fakeQuotes) Consume(_ context.Context, id string) error {
	f.consumed = append(f.consumed, id)
	delete(f.quotes, id)
	return nil
}

type fakeRooms struct {
	rooms       map[uuid.UUID]*rooms.Room
	invalidated []uuid.UUID
}

func (f *fakeRooms) GetRoom(_ context.Context, idOrSlug string) (*rooms.Room, error) {
	id, err := uuid.Parse(idOrSlug)
	if err != nil {
		return nil, rooms.ErrRoomNotFound
	}
	room, ok := f.rooms[id]
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRooms) InvalidateRoom(_ context.Context, id uuid.UUID) {
	f.invalidated = append(f.invalidated, id)
}

type fakePromos map[string]*promos.PromoCode

func (f fakePromos) GetByCode(_ context.Context, code string) (*promos.PromoCode, error) {
	p, ok := f[promos.NormalizeCode(code)]
	if !ok {
		return nil, promos.ErrPromoNotFound
	}
	return p, nil
}

// tenPercentOff accepts SAVE10 only
type tenPercentOff struct{}

func (tenPercentOff) Validate(_ context.Context, req promos.ValidationRequest) (*promos.ValidationResult, error) {
	if promos.NormalizeCode(req.Code) != "SAVE10" {
		return &promos.ValidationResult{Valid: false, Message: "Promo code not found"}, nil
	}
	final := req.OriginalAmount * 0.9
	return &promos.ValidationResult{Valid: true, FinalAmount: &final}, nil
}

type recordingPublisher struct {
	events []*notifications.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *notifications.BookingEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type BookingServiceSuite struct {
	suite.Suite

	repo      *memoryRepo
	quotes    *fakeQuotes
	rooms     *fakeRooms
	publisher *recordingPublisher
	calc      *pricing.Calculator
	deps      Dependencies
	service   Service

	executive *rooms.Room
	deluxe    *rooms.Room
	promo     *promos.PromoCode
}

var fixedToday = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func (s *BookingServiceSuite) SetupTest() {
	s.executive = &rooms.Room{ID: uuid.New(), Name: "Royal Executive", Category: pricing.CategoryRoyalExecutive, NightlyRate: 5000, TotalRooms: 5, AvailableRooms: 3, IsAvailable: true}
	s.deluxe = &rooms.Room{ID: uuid.New(), Name: "Royal Deluxe", Category: pricing.CategoryRoyalDeluxe, NightlyRate: 3000, TotalRooms: 5, AvailableRooms: 5, IsAvailable: true}
	s.promo = &promos.PromoCode{ID: uuid.New(), Code: "SAVE10", DiscountType: promos.DiscountTypePercentage, DiscountValue: 10, Active: true}

	s.repo = &memoryRepo{bookings: map[uuid.UUID]*Booking{}}
	s.quotes = &fakeQuotes{quotes: map[string]*quotes.Quote{}, claimed: map[string]bool{}}
	s.rooms = &fakeRooms{rooms: map[uuid.UUID]*rooms.Room{s.executive.ID: s.executive, s.deluxe.ID: s.deluxe}}
	s.publisher = &recordingPublisher{}
	s.calc = pricing.NewCalculator(pricing.DefaultRates())

	s.deps = Dependencies{
		Repo:       s.repo,
		Quotes:     s.quotes,
		Rooms:      s.rooms,
		Promos:     fakePromos{"SAVE10": s.promo},
		Validator:  tenPercentOff{},
		Calculator: s.calc,
		Publisher:  s.publisher,
		Now:        func() time.Time { return fixedToday },
	}
	s.service = NewService(s.deps)
}

// addQuote prices an executive stay the way the quote service does
func (s *BookingServiceSuite) addQuote(customerID string, adults int, promoCode string) string {
	req := quotes.QuoteRequest{RoomID: s.executive.ID.String(), CheckIn: "2026-06-01", CheckOut: "2026-06-03", RoomCount: 1, Adults: adults}
	stay := pricing.Stay{
		Category:    s.executive.Category,
		NightlyRate: s.executive.NightlyRate,
		CheckIn:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
		RoomCount:   1,
		Adults:      adults,
	}
	capacity, breakdown := s.calc.Evaluate(stay)

	q := &quotes.Quote{
		ID:          uuid.NewString(),
		Request:     req,
		CustomerID:  customerID,
		RoomName:    s.executive.Name,
		Category:    s.executive.Category,
		NightlyRate: s.executive.NightlyRate,
		Nights:      2,
		Capacity:    capacity,
		Breakdown:   breakdown,
		Promo:       promos.GateState{OriginalAmount: breakdown.BasePrice, DiscountedAmount: breakdown.BasePrice},
	}
	if promoCode != "" {
		discounted := breakdown.BasePrice * 0.9
		stay.DiscountedBasePrice = &discounted
		q.Capacity, q.Breakdown = s.calc.Evaluate(stay)
		q.Promo = promos.GateState{Code: promoCode, Applied: true, OriginalAmount: breakdown.BasePrice, DiscountedAmount: discounted, Seq: 1}
	}

	s.quotes.quotes[q.ID] = q
	return q.ID
}

func (s *BookingServiceSuite) confirm(userID, quoteID string) (*BookingResponse, error) {
	return s.service.ConfirmBooking(context.Background(), userID, ConfirmBookingRequest{
		QuoteID:    quoteID,
		GuestName:  " Asha Rao ",
		GuestEmail: "Asha@Example.com",
	})
}

func (s *BookingServiceSuite) adminRequest(room *rooms.Room, adults int, promoCode string) AdminBookingRequest {
	return AdminBookingRequest{
		Stay:       quotes.QuoteRequest{RoomID: room.ID.String(), CheckIn: "2026-06-01", CheckOut: "2026-06-03", RoomCount: 1, Adults: adults},
		GuestName:  "Walk In",
		GuestEmail: "front.desk@example.com",
		PromoCode:  promoCode,
	}
}

func (s *BookingServiceSuite) TestConfirmBookingSnapshotsQuote() {
	quoteID := s.addQuote("user-1", 3, "")

	resp, err := s.confirm("user-1", quoteID)
	s.Require().NoError(err)

	s.Regexp(regexp.MustCompile(`^RS-20260510-[A-Z]{6}$`), resp.BookingRef)
	s.Equal("CONFIRMED", resp.Status)
	s.Equal("CUSTOMER", resp.Source)
	s.Equal("Asha Rao", resp.GuestName)
	s.Equal("asha@example.com", resp.GuestEmail)
	s.Equal(3, resp.EffectiveAdults)
	s.Equal(12544.0, resp.Breakdown.Total)
	s.Equal("2026-06-03", resp.CheckOut)

	s.Equal([]string{quoteID}, s.quotes.consumed)
	s.Contains(s.rooms.invalidated, s.executive.ID)
	s.Require().Len(s.publisher.events, 1)
	s.Equal(notifications.EventTypeBookingConfirmed, s.publisher.events[0].Type)
	s.Equal(resp.BookingRef, s.publisher.events[0].BookingRef)
}

func (s *BookingServiceSuite) TestConfirmBookingWithPromo() {
	quoteID := s.addQuote("user-1", 2, "SAVE10")

	resp, err := s.confirm("user-1", quoteID)
	s.Require().NoError(err)
	s.Equal("SAVE10", resp.PromoCode)
	s.Equal(1000.0, resp.Discount)
	s.Equal(10080.0, resp.Breakdown.Total)

	stored, err := s.repo.GetByID(context.Background(), uuid.MustParse(resp.ID))
	s.Require().NoError(err)
	s.Require().NotNil(stored.PromoCodeID)
	s.Equal(s.promo.ID, *stored.PromoCodeID)
}

func (s *BookingServiceSuite) TestConfirmBookingRejectsPromoThatNoLongerValidates() {
	quoteID := s.addQuote("user-1", 2, "EXPIRED")

	_, err := s.confirm("user-1", quoteID)
	s.ErrorIs(err, ErrPromoNoLongerValid)
	s.Empty(s.repo.bookings)
	s.Empty(s.quotes.consumed)
	s.Equal([]string{quoteID}, s.quotes.released)
}

func (s *BookingServiceSuite) TestConfirmBookingOfAnotherCustomersQuote() {
	quoteID := s.addQuote("user-1", 2, "")

	_, err := s.confirm("user-2", quoteID)
	s.ErrorIs(err, ErrForbidden)

	// the owner can still book it
	_, err = s.confirm("user-1", quoteID)
	s.NoError(err)
}

func (s *BookingServiceSuite) TestConfirmSameQuoteTwice() {
	quoteID := s.addQuote("user-1", 2, "SAVE10")

	// keep the quote around as if removing it had failed
	kept := s.quotes.quotes[quoteID]
	_, err := s.confirm("user-1", quoteID)
	s.Require().NoError(err)
	s.quotes.quotes[quoteID] = kept

	_, err = s.confirm("user-1", quoteID)
	s.ErrorIs(err, quotes.ErrQuoteClaimed)
	s.Equal(409, StatusFor(err))
	s.Len(s.repo.bookings, 1)
	s.Len(s.publisher.events, 1)
	s.Empty(s.quotes.released)
}

func (s *BookingServiceSuite) TestConfirmBookingValidatesGuest() {
	quoteID := s.addQuote("", 2, "")

	_, err := s.service.ConfirmBooking(context.Background(), "user-1", ConfirmBookingRequest{QuoteID: quoteID, GuestName: "A", GuestEmail: "not-an-email"})
	inputErr, ok := validation.AsInputError(err)
	s.Require().True(ok)
	s.Contains(inputErr.Fields, "guest_email")
}

func (s *BookingServiceSuite) TestConfirmBookingSurvivesPublisherFailure() {
	s.publisher.err = errors.New("broker down")
	quoteID := s.addQuote("user-1", 2, "")

	_, err := s.confirm("user-1", quoteID)
	s.NoError(err)
	s.Len(s.repo.bookings, 1)
}

func (s *BookingServiceSuite) TestConfirmBookingKeepsQuoteWhenStoreFails() {
	s.repo.createErr = rooms.ErrInsufficientInventory
	quoteID := s.addQuote("user-1", 2, "")

	_, err := s.confirm("user-1", quoteID)
	s.ErrorIs(err, rooms.ErrInsufficientInventory)
	s.Empty(s.quotes.consumed)
	s.Empty(s.publisher.events)

	// the claim is released so the guest can retry
	s.Equal([]string{quoteID}, s.quotes.released)
	s.repo.createErr = nil
	_, err = s.confirm("user-1", quoteID)
	s.NoError(err)
	s.Len(s.repo.bookings, 1)
}

func (s *BookingServiceSuite) TestCancelBooking() {
	resp, err := s.confirm("user-1", s.addQuote("user-1", 2, ""))
	s.Require().NoError(err)
	id := uuid.MustParse(resp.ID)

	_, err = s.service.CancelBooking(context.Background(), id, "user-2")
	s.ErrorIs(err, ErrForbidden)

	cancelled, err := s.service.CancelBooking(context.Background(), id, "user-1")
	s.Require().NoError(err)
	s.Equal("CANCELLED", cancelled.Status)
	s.NotNil(cancelled.CancelledAt)
	s.Equal(notifications.EventTypeBookingCancelled, s.publisher.events[len(s.publisher.events)-1].Type)

	_, err = s.service.CancelBooking(context.Background(), id, "user-1")
	s.ErrorIs(err, ErrNotCancellable)
}

func (s *BookingServiceSuite) TestAdminBookingAppliesCapacityRules() {
	resp, err := s.service.CreateAdminBooking(context.Background(), "admin-1", s.adminRequest(s.deluxe, 2, ""))
	s.Require().NoError(err)

	s.Equal("ADMIN", resp.Source)
	s.Equal(1, resp.Adults)
	s.Equal(0.0, resp.Breakdown.ExtraGuestCharge)
	s.Equal(6720.0, resp.Breakdown.Total)
}

func (s *BookingServiceSuite) TestAdminBookingWithPromo() {
	resp, err := s.service.CreateAdminBooking(context.Background(), "admin-1", s.adminRequest(s.executive, 2, "save10"))
	s.Require().NoError(err)
	s.Equal("SAVE10", resp.PromoCode)
	s.Equal(10080.0, resp.Breakdown.Total)

	_, err = s.service.CreateAdminBooking(context.Background(), "admin-1", s.adminRequest(s.executive, 2, "NOPE"))
	inputErr, ok := validation.AsInputError(err)
	s.Require().True(ok)
	s.Equal([]string{"Promo code not found"}, inputErr.Fields["promo_code"])
}

func (s *BookingServiceSuite) TestAdminBookingRejectsTooManyRooms() {
	req := s.adminRequest(s.executive, 2, "")
	req.Stay.RoomCount = 4

	_, err := s.service.CreateAdminBooking(context.Background(), "admin-1", req)
	inputErr, ok := validation.AsInputError(err)
	s.Require().True(ok)
	s.Contains(inputErr.Fields, "stay.room_count")
}

func (s *BookingServiceSuite) TestAdminEditRepricesStay() {
	created, err := s.service.CreateAdminBooking(context.Background(), "admin-1", s.adminRequest(s.executive, 2, "SAVE10"))
	s.Require().NoError(err)
	id := uuid.MustParse(created.ID)

	// same stay keeps the promo
	same, err := s.service.UpdateAdminBooking(context.Background(), id, s.adminRequest(s.executive, 2, "SAVE10"))
	s.Require().NoError(err)
	s.Equal(10080.0, same.Breakdown.Total)
	s.Equal(created.BookingRef, same.BookingRef)

	// a changed base price cannot silently keep the old discount
	_, err = s.service.UpdateAdminBooking(context.Background(), id, s.adminRequest(s.executive, 3, "SAVE10"))
	inputErr, ok := validation.AsInputError(err)
	s.Require().True(ok)
	s.Contains(inputErr.Fields, "promo_code")

	updated, err := s.service.UpdateAdminBooking(context.Background(), id, s.adminRequest(s.executive, 3, ""))
	s.Require().NoError(err)
	s.Empty(updated.PromoCode)
	s.Equal(12544.0, updated.Breakdown.Total)
	s.Equal(notifications.EventTypeBookingUpdated, s.publisher.events[len(s.publisher.events)-1].Type)
}

func (s *BookingServiceSuite) TestAdminEditOfInHouseStay() {
	inHouse := &Booking{
		ID:          uuid.New(),
		Status:      StatusConfirmed,
		Source:      SourceAdmin,
		RoomID:      s.executive.ID,
		RoomCount:   1,
		CheckIn:     time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC),
		GuestName:   "Walk In",
		GuestEmail:  "front.desk@example.com",
		BookingRef:  "RS-20260508-ABCDEF",
		NightlyRate: s.executive.NightlyRate,
	}
	s.repo.bookings[inHouse.ID] = inHouse

	req := s.adminRequest(s.executive, 2, "")
	req.Stay.CheckIn = "2026-05-08"
	req.Stay.CheckOut = "2026-05-12"

	updated, err := s.service.UpdateAdminBooking(context.Background(), inHouse.ID, req)
	s.Require().NoError(err)
	s.Equal("2026-05-08", updated.CheckIn)
	s.Equal("2026-05-12", updated.CheckOut)
	s.Equal(4, updated.Nights)

	// moving check-in to another past day is still refused
	req.Stay.CheckIn = "2026-05-07"
	_, err = s.service.UpdateAdminBooking(context.Background(), inHouse.ID, req)
	inputErr, ok := validation.AsInputError(err)
	s.Require().True(ok)
	s.Equal([]string{validation.MsgPastCheckIn}, inputErr.Fields["stay.check_in"])
}

func (s *BookingServiceSuite) TestAdminEditMovingBookingRefreshesBothOwners() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })

	deps := s.deps
	deps.Cache = cache.NewService(client)
	svc := NewService(deps)
	ctx := context.Background()

	req := s.adminRequest(s.executive, 2, "")
	req.UserID = "user-1"
	created, err := svc.CreateAdminBooking(ctx, "admin-1", req)
	s.Require().NoError(err)

	before, err := svc.GetUserBookings(ctx, "user-1", BookingListQuery{})
	s.Require().NoError(err)
	s.Len(before.Bookings, 1)
	s.NotEmpty(mr.Keys())

	req.UserID = "user-2"
	_, err = svc.UpdateAdminBooking(ctx, uuid.MustParse(created.ID), req)
	s.Require().NoError(err)

	previousOwner, err := svc.GetUserBookings(ctx, "user-1", BookingListQuery{})
	s.Require().NoError(err)
	s.Empty(previousOwner.Bookings)

	newOwner, err := svc.GetUserBookings(ctx, "user-2", BookingListQuery{})
	s.Require().NoError(err)
	s.Len(newOwner.Bookings, 1)
}

func (s *BookingServiceSuite) TestAdminEditOfCancelledBooking() {
	created, err := s.service.CreateAdminBooking(context.Background(), "admin-1", s.adminRequest(s.executive, 2, ""))
	s.Require().NoError(err)
	id := uuid.MustParse(created.ID)

	_, err = s.service.CancelBookingAsAdmin(context.Background(), id)
	s.Require().NoError(err)

	_, err = s.service.UpdateAdminBooking(context.Background(), id, s.adminRequest(s.executive, 2, ""))
	s.ErrorIs(err, ErrNotEditable)
}

func (s *BookingServiceSuite) TestCompleteDueStays() {
	past := &Booking{ID: uuid.New(), Status: StatusConfirmed, RoomID: s.executive.ID, RoomCount: 1, CheckIn: fixedToday.AddDate(0, 0, -3), CheckOut: fixedToday.AddDate(0, 0, -1)}
	future := &Booking{ID: uuid.New(), Status: StatusConfirmed, RoomID: s.executive.ID, RoomCount: 1, CheckIn: fixedToday.AddDate(0, 0, 5), CheckOut: fixedToday.AddDate(0, 0, 7)}
	s.repo.bookings[past.ID] = past
	s.repo.bookings[future.ID] = future

	completed, err := s.service.CompleteDueStays(context.Background())
	s.Require().NoError(err)
	s.Equal(1, completed)
	s.Equal(StatusCompleted, s.repo.bookings[past.ID].Status)
	s.Equal(StatusConfirmed, s.repo.bookings[future.ID].Status)

	completed, err = s.service.CompleteDueStays(context.Background())
	s.Require().NoError(err)
	s.Zero(completed)
}

func (s *BookingServiceSuite) TestRoomOccupancy() {
	day := func(d int) time.Time { return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC) }
	stays := []*Booking{
		{ID: uuid.New(), Status: StatusConfirmed, RoomID: s.executive.ID, RoomCount: 2, CheckIn: day(1), CheckOut: day(3)},
		{ID: uuid.New(), Status: StatusConfirmed, RoomID: s.executive.ID, RoomCount: 1, CheckIn: day(2), CheckOut: day(5)},
		{ID: uuid.New(), Status: StatusCancelled, RoomID: s.executive.ID, RoomCount: 3, CheckIn: day(1), CheckOut: day(4)},
		{ID: uuid.New(), Status: StatusConfirmed, RoomID: s.deluxe.ID, RoomCount: 1, CheckIn: day(1), CheckOut: day(2)},
	}
	for _, b := range stays {
		s.repo.bookings[b.ID] = b
	}

	resp, err := s.service.RoomOccupancy(context.Background(), OccupancyQuery{RoomID: s.executive.ID.String(), From: "2026-06-01", To: "2026-06-05"})
	s.Require().NoError(err)
	s.Equal([]NightOccupancy{
		{Date: "2026-06-01", RoomsBooked: 2, Bookings: 1},
		{Date: "2026-06-02", RoomsBooked: 3, Bookings: 2},
		{Date: "2026-06-03", RoomsBooked: 1, Bookings: 1},
		{Date: "2026-06-04", RoomsBooked: 1, Bookings: 1},
	}, resp.Nights)

	_, err = s.service.RoomOccupancy(context.Background(), OccupancyQuery{RoomID: s.executive.ID.String(), From: "2026-06-05", To: "2026-06-01"})
	inputErr, ok := validation.AsInputError(err)
	s.Require().True(ok)
	s.Contains(inputErr.Fields, "to")

	_, err = s.service.RoomOccupancy(context.Background(), OccupancyQuery{RoomID: s.executive.ID.String(), From: "2026-06-01", To: "2026-12-01"})
	inputErr, ok = validation.AsInputError(err)
	s.Require().True(ok)
	s.Contains(inputErr.Fields, "to")
}

func TestBookingService(t *testing.T) {
	suite.Run(t, new(BookingServiceSuite))
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		ErrBookingNotFound:             404,
		quotes.ErrQuoteNotFound:        404,
		ErrForbidden:                   403,
		ErrNotCancellable:              409,
		ErrPromoExhausted:              409,
		quotes.ErrQuoteChanged:         409,
		quotes.ErrQuoteClaimed:         409,
		rooms.ErrInsufficientInventory: 409,
		errors.New("boom"):             500,
	}
	for err, want := range cases {
		if got := StatusFor(err); got != want {
			t.Errorf("StatusFor(%v) = %d, want %d", err, got, want)
		}
	}
}
