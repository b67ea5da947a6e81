package rooms

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomUnavailable       = errors.New("room is not available for booking")
	ErrInsufficientInventory = errors.New("not enough rooms left for the selected room type")
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetBySlug(ctx context.Context, slug string) (*Room, error)
	List(ctx context.Context, filters RoomFilters) ([]Room, int64, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// Reserve takes count rooms out of inventory
	Reserve(ctx context.Context, id uuid.UUID, count int) error
	// Release puts count rooms back, never above the room's total
	Release(ctx context.Context, id uuid.UUID, count int) error

	// WithTx returns a repository bound to an open transaction
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) Update(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Room{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Room, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *repository) first(ctx context.Context, query string, arg interface{}) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Where(query, arg).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) List(ctx context.Context, filters RoomFilters) ([]Room, int64, error) {
	var rooms []Room
	var total int64

	query := r.db.WithContext(ctx).Model(&Room{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.AvailableOnly {
		query = query.Where("is_available = ? AND available_rooms > 0", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filters.Page - 1) * filters.Limit
	err := query.Order("nightly_rate ASC").Offset(offset).Limit(filters.Limit).Find(&rooms).Error
	return rooms, total, err
}

func (r *repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	result := r.db.WithContext(ctx).Model(&Room{}).Where("id = ?", id).Update("is_available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *repository) Reserve(ctx context.Context, id uuid.UUID, count int) error {
	result := r.db.WithContext(ctx).Model(&Room{}).
		Where("id = ? AND is_available = ? AND available_rooms >= ?", id, true, count).
		Update("available_rooms", gorm.Expr("available_rooms - ?", count))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

func (r *repository) Release(ctx context.Context, id uuid.UUID, count int) error {
	result := r.db.WithContext(ctx).Model(&Room{}).
		Where("id = ?", id).
		Update("available_rooms", gorm.Expr("LEAST(available_rooms + ?, total_rooms)", count))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
