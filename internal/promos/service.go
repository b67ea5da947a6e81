package promos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service manages promo codes and validates them against booking amounts
type Service interface {
	Validator

	CreatePromo(ctx context.Context, req PromoCodeRequest) (*PromoCode, error)
	UpdatePromo(ctx context.Context, id uuid.UUID, req PromoCodeRequest) (*PromoCode, error)
	DeletePromo(ctx context.Context, id uuid.UUID) error
	GetPromo(ctx context.Context, id uuid.UUID) (*PromoCode, error)
	ListPromos(ctx context.Context, activeOnly bool, limit, offset int) ([]PromoCode, int64, error)
}

var ErrInvalidPromo = errors.New("invalid promo code definition")

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new promo service instance
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Validate checks a promo code for an amount. Rejections are reported
// through the result; only storage failures are returned as errors.
func (s *service) Validate(ctx context.Context, req ValidationRequest) (*ValidationResult, error) {
	promo, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, ErrPromoNotFound) {
			return reject("Promo code not found"), nil
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	now := s.now()
	switch {
	case !promo.Active:
		return reject("Promo code is no longer active"), nil
	case promo.ValidFrom != nil && now.Before(*promo.ValidFrom):
		return reject("Promo code is not active yet"), nil
	case promo.ValidUntil != nil && now.After(*promo.ValidUntil):
		return reject("Promo code has expired"), nil
	case req.OriginalAmount < promo.MinAmount:
		return reject(fmt.Sprintf("A minimum amount of %.0f is required for this promo code", promo.MinAmount)), nil
	case promo.IsExhausted():
		return reject("Promo code usage limit reached"), nil
	}

	if promo.PerCustomerLimit > 0 {
		used, err := s.repo.CountRedemptions(ctx, promo.ID, req.CustomerID, req.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("failed to count promo redemptions: %w", err)
		}
		if used >= int64(promo.PerCustomerLimit) {
			return reject("You have already used this promo code"), nil
		}
	}

	discount := promo.DiscountFor(req.OriginalAmount)
	final := req.OriginalAmount - discount

	return &ValidationResult{
		Valid:       true,
		FinalAmount: &final,
		Message:     fmt.Sprintf("Promo code %s applied, you save %.0f", promo.Code, discount),
	}, nil
}

func reject(msg string) *ValidationResult {
	return &ValidationResult{Valid: false, Message: msg}
}

// CreatePromo creates a new promo code
func (s *service) CreatePromo(ctx context.Context, req PromoCodeRequest) (*PromoCode, error) {
	if err := validatePromoRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: code %s already exists", ErrInvalidPromo, NormalizeCode(req.Code))
	}

	promo := &PromoCode{}
	applyPromoRequest(promo, req)

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}
	return promo, nil
}

// UpdatePromo updates an existing promo code
func (s *service) UpdatePromo(ctx context.Context, id uuid.UUID, req PromoCodeRequest) (*PromoCode, error) {
	if err := validatePromoRequest(req); err != nil {
		return nil, err
	}

	promo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPromoRequest(promo, req)
	promo.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, promo); err != nil {
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}
	return promo, nil
}

// DeletePromo removes a promo code
func (s *service) DeletePromo(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// GetPromo retrieves a promo code by ID
func (s *service) GetPromo(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPromos lists promo codes with pagination
func (s *service) ListPromos(ctx context.Context, activeOnly bool, limit, offset int) ([]PromoCode, int64, error) {
	return s.repo.List(ctx, activeOnly, limit, offset)
}

func validatePromoRequest(req PromoCodeRequest) error {
	if !DiscountType(req.DiscountType).IsValid() {
		return fmt.Errorf("%w: unknown discount type %s", ErrInvalidPromo, req.DiscountType)
	}
	if DiscountType(req.DiscountType) == DiscountTypePercentage && req.DiscountValue > 100 {
		return fmt.Errorf("%w: percentage discount cannot exceed 100", ErrInvalidPromo)
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && !req.ValidUntil.After(*req.ValidFrom) {
		return fmt.Errorf("%w: valid_until must be after valid_from", ErrInvalidPromo)
	}
	return nil
}

func applyPromoRequest(promo *PromoCode, req PromoCodeRequest) {
	promo.Code = NormalizeCode(req.Code)
	promo.Description = req.Description
	promo.DiscountType = DiscountType(req.DiscountType)
	promo.DiscountValue = req.DiscountValue
	promo.MinAmount = req.MinAmount
	promo.MaxDiscount = req.MaxDiscount
	promo.ValidFrom = req.ValidFrom
	promo.ValidUntil = req.ValidUntil
	promo.UsageLimit = req.UsageLimit
	promo.PerCustomerLimit = req.PerCustomerLimit
	promo.Active = true
	if req.Active != nil {
		promo.Active = *req.Active
	}
}
