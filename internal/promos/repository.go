package promos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPromoNotFound = errors.New("promo code not found")

type Repository interface {
	Create(ctx context.Context, promo *PromoCode) error
	Update(ctx context.Context, promo *PromoCode) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*PromoCode, error)
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]PromoCode, int64, error)

	// CountRedemptions counts uses of a promo by a customer or a device
	CountRedemptions(ctx context.Context, promoID uuid.UUID, customerID, deviceID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, promo *PromoCode) error {
	promo.Code = NormalizeCode(promo.Code)
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *repository) Update(ctx context.Context, promo *PromoCode) error {
	promo.Code = NormalizeCode(promo.Code)
	return r.db.WithContext(ctx).Save(promo).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PromoCode{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromoNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*PromoCode, error) {
	var promo PromoCode
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return &promo, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	var promo PromoCode
	err := r.db.WithContext(ctx).Where("code = ?", NormalizeCode(code)).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return &promo, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]PromoCode, int64, error) {
	var promos []PromoCode
	var total int64

	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&PromoCode{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&promos).Error
	return promos, total, err
}

func (r *repository) CountRedemptions(ctx context.Context, promoID uuid.UUID, customerID, deviceID string) (int64, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&PromoRedemption{}).Where("promo_code_id = ?", promoID)
	switch {
	case customerID != "" && deviceID != "":
		query = query.Where("customer_id = ? OR device_id = ?", customerID, deviceID)
	case customerID != "":
		query = query.Where("customer_id = ?", customerID)
	case deviceID != "":
		query = query.Where("device_id = ?", deviceID)
	default:
		return 0, nil
	}

	err := query.Count(&count).Error
	return count, err
}

// NormalizeCode upper-cases and trims a promo code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
