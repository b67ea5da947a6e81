package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"royalstay/internal/promos"
	"royalstay/internal/rooms"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotCancellable  = errors.New("booking can no longer be cancelled")
	ErrNotEditable     = errors.New("only confirmed bookings can be edited")
	ErrPromoExhausted  = errors.New("promo code usage limit reached")
)

type Repository interface {
	// Create stores a booking, takes its rooms out of inventory and records
	// the promo redemption in one transaction
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	ListByUser(ctx context.Context, userID string, query BookingListQuery) ([]Booking, int64, error)
	List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// UpdateStay overwrites the snapshot of a confirmed booking and moves
	// inventory from the previous stay to the new one
	UpdateStay(ctx context.Context, previous, booking *Booking) error

	Cancel(ctx context.Context, booking *Booking, at time.Time) error
	Complete(ctx context.Context, booking *Booking, at time.Time) error

	// ListDueForCheckout returns confirmed bookings whose check-out is on or before day
	ListDueForCheckout(ctx context.Context, day time.Time, limit int) ([]Booking, error)

	// ListStaysInRange returns confirmed and completed bookings of a room
	// that hold at least one night in [from, to)
	ListStaysInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]Booking, error)
}

type repository struct {
	db    *gorm.DB
	rooms rooms.Repository
}

func NewRepository(db *gorm.DB, roomRepo rooms.Repository) Repository {
	return &repository{db: db, rooms: roomRepo}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.rooms.WithTx(tx).Reserve(ctx, booking.RoomID, booking.RoomCount); err != nil {
			return err
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if booking.PromoCodeID == nil {
			return nil
		}
		return redeemPromo(tx, booking)
	})
}

// redeemPromo bumps the usage counter only while the limit allows it, so two
// bookings racing for the last use cannot both succeed
func redeemPromo(tx *gorm.DB, booking *Booking) error {
	result := tx.Model(&promos.PromoCode{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", *booking.PromoCodeID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to redeem promo code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromoExhausted
	}

	redemption := &promos.PromoRedemption{
		PromoCodeID: *booking.PromoCodeID,
		BookingID:   booking.ID,
		CustomerID:  booking.UserID,
		DeviceID:    booking.DeviceID,
		Discount:    booking.Discount,
	}
	if err := tx.Create(redemption).Error; err != nil {
		return fmt.Errorf("failed to record promo redemption: %w", err)
	}
	return nil
}

// releasePromo undoes redeemPromo when an edit drops the discount
func releasePromo(tx *gorm.DB, booking *Booking) error {
	err := tx.Model(&promos.PromoCode{}).
		Where("id = ? AND used_count > 0", *booking.PromoCodeID).
		UpdateColumn("used_count", gorm.Expr("used_count - ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to release promo code: %w", err)
	}
	return tx.Where("booking_id = ?", booking.ID).Delete(&promos.PromoRedemption{}).Error
}

func samePromo(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)
	return r.list(base, query)
}

func (r *repository) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&Booking{}), query)
}

func (r *repository) list(base *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	query.normalize()
	base = r.applyFilters(base, query)

	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := base.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) UpdateStay(ctx context.Context, previous, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomRepo := r.rooms.WithTx(tx)

		if previous.RoomID != booking.RoomID || previous.RoomCount != booking.RoomCount {
			if err := roomRepo.Release(ctx, previous.RoomID, previous.RoomCount); err != nil {
				return err
			}
			if err := roomRepo.Reserve(ctx, booking.RoomID, booking.RoomCount); err != nil {
				return err
			}
		}

		if !samePromo(previous.PromoCodeID, booking.PromoCodeID) {
			if previous.PromoCodeID != nil {
				if err := releasePromo(tx, previous); err != nil {
					return err
				}
			}
			if booking.PromoCodeID != nil {
				if err := redeemPromo(tx, booking); err != nil {
					return err
				}
			}
		}

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", booking.ID, StatusConfirmed).
			Select("*").
			Omit("id", "booking_ref", "transaction_id", "source", "created_at", "created_by").
			Updates(booking)
		if result.Error != nil {
			return fmt.Errorf("failed to update booking: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotEditable
		}
		return nil
	})
}

func (r *repository) Cancel(ctx context.Context, booking *Booking, at time.Time) error {
	return r.transition(ctx, booking, StatusCancelled, map[string]interface{}{
		"status":       StatusCancelled,
		"cancelled_at": at,
		"updated_at":   at,
	}, ErrNotCancellable)
}

func (r *repository) Complete(ctx context.Context, booking *Booking, at time.Time) error {
	return r.transition(ctx, booking, StatusCompleted, map[string]interface{}{
		"status":       StatusCompleted,
		"completed_at": at,
		"updated_at":   at,
	}, ErrNotEditable)
}

// transition moves a confirmed booking to a final status and gives its rooms back
func (r *repository) transition(ctx context.Context, booking *Booking, to Status, updates map[string]interface{}, notConfirmed error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", booking.ID, StatusConfirmed).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update booking status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return notConfirmed
		}

		if err := r.rooms.WithTx(tx).Release(ctx, booking.RoomID, booking.RoomCount); err != nil && !errors.Is(err, rooms.ErrRoomNotFound) {
			return err
		}

		booking.Status = to
		return nil
	})
}

func (r *repository) ListDueForCheckout(ctx context.Context, day time.Time, limit int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND check_out <= ?", StatusConfirmed, day).
		Order("check_out ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) ListStaysInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomID, []Status{StatusConfirmed, StatusCompleted}, to, from).
		Order("check_in ASC").
		Find(&bookings).Error
	return bookings, err
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", strings.ToUpper(filters.Status))
	}

	if filters.Source != "" {
		query = query.Where("source = ?", strings.ToUpper(filters.Source))
	}

	if filters.RoomID != "" {
		if roomID, err := uuid.Parse(filters.RoomID); err == nil {
			query = query.Where("room_id = ?", roomID)
		}
	}

	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(booking_ref) LIKE ? OR LOWER(guest_name) LIKE ? OR LOWER(guest_email) LIKE ?", like, like, like)
	}

	// Filter by check-in date range
	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("check_in >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			query = query.Where("check_in <= ?", dateTo)
		}
	}

	return query
}

// Helper function to calculate total pages
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
