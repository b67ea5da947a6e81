package promos

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

var (
	ErrEmptyCode     = errors.New("promo code is required")
	ErrPromoInFlight = errors.New("a promo code is already being validated")
	ErrStaleResponse = errors.New("promo validation response is stale")
)

// ValidationRequest is what the validator receives for a promo code.
type ValidationRequest struct {
	Code           string  `json:"code"`
	OriginalAmount float64 `json:"original_amount"`
	CustomerID     string  `json:"customer_id"`
	DeviceID       string  `json:"device_id"`
}

// ValidationResult mirrors the validator contract {valid, final_amount, message}.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	FinalAmount *float64 `json:"final_amount,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// Validator decides whether a promo code may be applied to an amount.
type Validator interface {
	Validate(ctx context.Context, req ValidationRequest) (*ValidationResult, error)
}

// GateState is the serialisable state of a Gate.
type GateState struct {
	Code             string  `json:"code"`
	Applied          bool    `json:"applied"`
	OriginalAmount   float64 `json:"original_amount"`
	DiscountedAmount float64 `json:"discounted_amount"`
	Message          string  `json:"message,omitempty"`
	Seq              uint64  `json:"seq"`
}

// Discount returns how much the applied promo takes off the original amount.
func (s GateState) Discount() float64 {
	if !s.Applied {
		return 0
	}
	return s.OriginalAmount - s.DiscountedAmount
}

// Ticket identifies one validation request issued by Begin.
type Ticket struct {
	Seq            uint64
	Code           string
	OriginalAmount float64
}

// Gate orchestrates applying and removing a promo code for one quote.
//
// Every validation is tagged with a sequence number. A response is only
// accepted when its sequence number is still the latest one, so editing the
// code, repricing or removing the promo while a validation is in flight
// discards its result.
type Gate struct {
	mu        sync.Mutex
	validator Validator
	state     GateState
	inFlight  bool
}

// NewGate creates a gate with nothing applied for the given original amount.
func NewGate(validator Validator, originalAmount float64) *Gate {
	return &Gate{
		validator: validator,
		state: GateState{
			OriginalAmount:   originalAmount,
			DiscountedAmount: originalAmount,
		},
	}
}

// RestoreGate rebuilds a gate from a previously saved state.
func RestoreGate(validator Validator, state GateState) *Gate {
	return &Gate{validator: validator, state: state}
}

// State returns a copy of the current state.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// InFlight reports whether a validation is outstanding.
func (g *Gate) InFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// SetCode records an edit of the code field. Any outstanding validation
// becomes stale.
func (g *Gate) SetCode(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Code = strings.TrimSpace(code)
	g.state.Seq++
}

// Invalidate makes every outstanding ticket stale without touching amounts.
func (g *Gate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Seq++
}

// Reprice moves the gate to a new original amount. An applied promo is
// dropped because its final amount was computed for the old amount.
func (g *Gate) Reprice(originalAmount float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if originalAmount == g.state.OriginalAmount {
		return
	}
	g.state.OriginalAmount = originalAmount
	g.state.DiscountedAmount = originalAmount
	if g.state.Applied {
		g.state.Applied = false
		g.state.Message = "Promo code removed because the stay changed, please apply it again"
	}
	g.state.Seq++
}

// Begin starts a validation for code and returns its ticket.
func (g *Gate) Begin(code string) (Ticket, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Ticket{}, ErrEmptyCode
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight {
		return Ticket{}, ErrPromoInFlight
	}
	g.inFlight = true
	g.state.Code = code
	g.state.Seq++

	return Ticket{Seq: g.state.Seq, Code: code, OriginalAmount: g.state.OriginalAmount}, nil
}

// Complete records the validator outcome for ticket. Outcomes for anything
// but the latest ticket are discarded with ErrStaleResponse. A validator
// rejection is not an error: the gate reverts to "not applied" and keeps the
// validator message.
func (g *Gate) Complete(ticket Ticket, result *ValidationResult, validateErr error) (GateState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight = false

	if ticket.Seq != g.state.Seq || ticket.OriginalAmount != g.state.OriginalAmount {
		return g.state, ErrStaleResponse
	}

	if validateErr != nil {
		g.revert("Could not validate promo code, please try again")
		return g.state, fmt.Errorf("validate promo code: %w", validateErr)
	}

	if result == nil || !result.Valid || result.FinalAmount == nil {
		msg := "Invalid promo code"
		if result != nil && result.Message != "" {
			msg = result.Message
		}
		g.revert(msg)
		return g.state, nil
	}

	g.state.Applied = true
	g.state.DiscountedAmount = math.Max(0, math.Min(*result.FinalAmount, g.state.OriginalAmount))
	g.state.Message = result.Message
	if g.state.Message == "" {
		g.state.Message = "Promo code applied"
	}

	return g.state, nil
}

// Apply runs Begin, the validator and Complete in one call.
func (g *Gate) Apply(ctx context.Context, code, customerID, deviceID string) (GateState, error) {
	ticket, err := g.Begin(code)
	if err != nil {
		return g.State(), err
	}

	result, err := g.validator.Validate(ctx, ValidationRequest{
		Code:           ticket.Code,
		OriginalAmount: ticket.OriginalAmount,
		CustomerID:     customerID,
		DeviceID:       deviceID,
	})

	return g.Complete(ticket, result, err)
}

// Remove clears an applied promo. Removing when nothing is applied is a no-op.
func (g *Gate) Remove() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()

	// drop whatever is still being validated
	if g.inFlight {
		g.state.Seq++
	}
	if !g.state.Applied {
		return g.state
	}

	g.state.Applied = false
	g.state.DiscountedAmount = g.state.OriginalAmount
	g.state.Code = ""
	g.state.Message = ""

	return g.state
}

func (g *Gate) revert(msg string) {
	g.state.Applied = false
	g.state.DiscountedAmount = g.state.OriginalAmount
	g.state.Message = msg
}
