package quotes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"royalstay/internal/pricing"
	"royalstay/internal/promos"
	"royalstay/internal/rooms"
	"royalstay/internal/shared/validation"
	"royalstay/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrQuoteChanged = errors.New("the price of this stay has changed, please review the quote")
	ErrQuoteClaimed = errors.New("this quote is already being booked")
)

type Service interface {
	CreateQuote(ctx context.Context, req QuoteRequest, customerID, deviceID string) (*QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (*QuoteResponse, error)
	UpdateQuote(ctx context.Context, id string, req QuoteRequest) (*QuoteResponse, error)
	ApplyPromo(ctx context.Context, id string, req ApplyPromoRequest, customerID string) (*QuoteResponse, error)
	RemovePromo(ctx context.Context, id string) (*QuoteResponse, error)

	// Preview prices a stay without storing it (admin booking form)
	Preview(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)

	// Checkout re-prices the quote against the current rate and claims it
	// for booking. It refuses while a promo validation is outstanding or
	// while another checkout holds the claim.
	Checkout(ctx context.Context, id string) (*Quote, error)
	// Release drops the claim of a checkout that did not become a booking
	Release(ctx context.Context, id string) error
	// Consume removes a quote that became a booking
	Consume(ctx context.Context, id string) error
}

type Options struct {
	TTL     time.Duration
	LockTTL time.Duration
	Now     func() time.Time
}

type service struct {
	store     Store
	rooms     rooms.RateLookup
	validator promos.Validator
	calc      *pricing.Calculator
	input     *validation.Validator
	opts      Options
	log       *logger.Logger
}

func NewService(store Store, rateLookup rooms.RateLookup, validator promos.Validator, calc *pricing.Calculator, opts Options) Service {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &service{
		store:     store,
		rooms:     rateLookup,
		validator: validator,
		calc:      calc,
		input:     validation.New(opts.Now),
		opts:      opts,
		log:       logger.GetDefault(),
	}
}

func (s *service) CreateQuote(ctx context.Context, req QuoteRequest, customerID, deviceID string) (*QuoteResponse, error) {
	if err := s.input.Struct(req); err != nil {
		return nil, err
	}

	now := s.opts.Now()
	q := &Quote{
		ID:         uuid.NewString(),
		Request:    req,
		CustomerID: customerID,
		DeviceID:   deviceID,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(s.opts.TTL),
	}

	if err := s.price(ctx, q); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, q, s.opts.TTL); err != nil {
		return nil, err
	}

	return s.respond(ctx, q), nil
}

func (s *service) GetQuote(ctx context.Context, id string) (*QuoteResponse, error) {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, q), nil
}

// UpdateQuote replaces the stay and re-prices it. The most recent write wins.
func (s *service) UpdateQuote(ctx context.Context, id string, req QuoteRequest) (*QuoteResponse, error) {
	if err := s.input.Struct(req); err != nil {
		return nil, err
	}

	q, err := s.store.Update(ctx, id, func(q *Quote) error {
		if q.Claimed() {
			return ErrQuoteClaimed
		}
		q.Request = req
		q.UpdatedAt = s.opts.Now()
		return s.price(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	return s.respond(ctx, q), nil
}

func (s *service) ApplyPromo(ctx context.Context, id string, req ApplyPromoRequest, customerID string) (*QuoteResponse, error) {
	unlock, err := s.store.Lock(ctx, id, s.opts.LockTTL)
	if err != nil {
		if errors.Is(err, ErrLockHeld) {
			return nil, promos.ErrPromoInFlight
		}
		return nil, err
	}
	release := sync.OnceFunc(func() { unlock(context.WithoutCancel(ctx)) })
	defer release()

	var ticket promos.Ticket
	q, err := s.store.Update(ctx, id, func(q *Quote) error {
		if q.Claimed() {
			return ErrQuoteClaimed
		}
		gate := promos.RestoreGate(s.validator, q.Promo)
		t, err := gate.Begin(req.Code)
		if err != nil {
			return err
		}
		ticket = t
		q.Promo = gate.State()
		if req.DeviceID != "" {
			q.DeviceID = req.DeviceID
		}
		if customerID != "" {
			q.CustomerID = customerID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, validateErr := s.validator.Validate(ctx, promos.ValidationRequest{
		Code:           ticket.Code,
		OriginalAmount: ticket.OriginalAmount,
		CustomerID:     q.CustomerID,
		DeviceID:       q.DeviceID,
	})

	var completeErr error
	q, err = s.store.Update(ctx, id, func(q *Quote) error {
		gate := promos.RestoreGate(s.validator, q.Promo)
		state, err := gate.Complete(ticket, result, validateErr)
		if errors.Is(err, promos.ErrStaleResponse) {
			return err
		}
		completeErr = err
		q.Promo = state
		q.UpdatedAt = s.opts.Now()
		return s.reprice(q)
	})
	if err != nil {
		if errors.Is(err, promos.ErrStaleResponse) {
			s.log.Info("Discarded stale promo validation", "quote_id", id, "code", ticket.Code)
		}
		return nil, err
	}

	s.log.LogPromoApplied(ctx, id, ticket.Code, q.Promo.Applied, q.Promo.OriginalAmount, q.Promo.DiscountedAmount)
	if completeErr != nil {
		s.log.ErrorWithContext(ctx, "Promo validation failed", completeErr, map[string]interface{}{"quote_id": id})
	}

	// unlock before responding so promo_pending is false
	release()
	return s.respond(ctx, q), nil
}

// RemovePromo drops an applied promo. Removing when nothing is applied is a no-op.
func (s *service) RemovePromo(ctx context.Context, id string) (*QuoteResponse, error) {
	q, err := s.store.Update(ctx, id, func(q *Quote) error {
		if q.Claimed() {
			return ErrQuoteClaimed
		}
		gate := promos.RestoreGate(s.validator, q.Promo)
		if s.store.Locked(ctx, id) {
			gate.Invalidate()
		}
		q.Promo = gate.Remove()
		return s.reprice(q)
	})
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, q), nil
}

func (s *service) Preview(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if err := s.input.Struct(req); err != nil {
		return nil, err
	}

	q := &Quote{ID: "preview", Request: req}
	if err := s.price(ctx, q); err != nil {
		return nil, err
	}
	resp := ToResponse(q, false)
	return &resp, nil
}

func (s *service) Checkout(ctx context.Context, id string) (*Quote, error) {
	if s.store.Locked(ctx, id) {
		return nil, promos.ErrPromoInFlight
	}

	changed := false
	q, err := s.store.Update(ctx, id, func(q *Quote) error {
		if q.Claimed() {
			return ErrQuoteClaimed
		}
		if err := s.input.Struct(q.Request); err != nil {
			return err
		}
		before := pricing.Round(q.Breakdown.Total)
		if err := s.price(ctx, q); err != nil {
			return err
		}
		changed = pricing.Round(q.Breakdown.Total) != before
		if !changed {
			claimedAt := s.opts.Now()
			q.ClaimedAt = &claimedAt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		return nil, ErrQuoteChanged
	}
	return q, nil
}

func (s *service) Release(ctx context.Context, id string) error {
	_, err := s.store.Update(ctx, id, func(q *Quote) error {
		q.ClaimedAt = nil
		return nil
	})
	return err
}

func (s *service) Consume(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// price looks up the room rate and recomputes capacity and breakdown. An
// applied promo survives only if the undiscounted base price is unchanged.
func (s *service) price(ctx context.Context, q *Quote) error {
	roomID, err := uuid.Parse(q.Request.RoomID)
	if err != nil {
		return &validation.InputError{Fields: map[string][]string{"room_id": {"must be a valid UUID"}}}
	}

	info, err := s.rooms.RateLookup(ctx, roomID)
	if err != nil {
		return err
	}
	if q.Request.RoomCount > info.AvailableRoomCount {
		return &validation.InputError{Fields: map[string][]string{
			"room_count": {fmt.Sprintf("only %d rooms are available", info.AvailableRoomCount)},
		}}
	}

	q.RoomName = info.Name
	q.Category = info.Category
	q.NightlyRate = info.NightlyRate
	q.BreakfastRate = info.BreakfastRate

	checkIn, checkOut, err := stayDates(q.Request)
	if err != nil {
		return err
	}

	capacity, undiscounted := s.calc.Evaluate(q.Stay(checkIn, checkOut))
	if capacity.Corrected {
		s.log.LogCapacityCorrected(ctx, q.Request.RoomID, capacity.Category.String(), capacity.RequestedAdults, capacity.Adults)
	}

	gate := promos.RestoreGate(s.validator, q.Promo)
	gate.Reprice(undiscounted.BasePrice)
	q.Promo = gate.State()

	return s.reprice(q)
}

// reprice recomputes the breakdown from the stored rate and promo state
func (s *service) reprice(q *Quote) error {
	checkIn, checkOut, err := stayDates(q.Request)
	if err != nil {
		return err
	}

	stay := q.Stay(checkIn, checkOut)
	if q.Promo.Applied {
		discounted := q.Promo.DiscountedAmount
		stay.DiscountedBasePrice = &discounted
	}

	q.Nights = pricing.Nights(checkIn, checkOut)
	q.Capacity, q.Breakdown = s.calc.Evaluate(stay)
	return nil
}

func (s *service) respond(ctx context.Context, q *Quote) *QuoteResponse {
	resp := ToResponse(q, s.store.Locked(ctx, q.ID))
	return &resp
}

func stayDates(req QuoteRequest) (time.Time, time.Time, error) {
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
