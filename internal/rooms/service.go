package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"royalstay/internal/pricing"
	"royalstay/internal/shared/constants"
	"royalstay/pkg/cache"
	"royalstay/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrInvalidRoom = errors.New("invalid room definition")

// RateLookup resolves the tariff for a room. Quotes and bookings depend on
// this instead of the full room service.
type RateLookup interface {
	RateLookup(ctx context.Context, id uuid.UUID) (*RateInfo, error)
}

type Service interface {
	RateLookup

	CreateRoom(ctx context.Context, req RoomRequest) (*Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, req RoomRequest) (*Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	GetRoom(ctx context.Context, idOrSlug string) (*Room, error)
	ListRooms(ctx context.Context, filters RoomFilters) (*RoomListResponse, error)
	ListAvailableRooms(ctx context.Context, page, limit int) (*RoomListResponse, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Room, error)

	// InvalidateRoom drops cached data after an inventory change
	InvalidateRoom(ctx context.Context, id uuid.UUID)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService creates a room service. cacheService may be nil, in which case
// every lookup goes to the database.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

// RateLookup returns the rate information for a bookable room
func (s *service) RateLookup(ctx context.Context, id uuid.UUID) (*RateInfo, error) {
	var info RateInfo

	fetch := func() (interface{}, error) {
		room, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return room.RateInfo(), nil
	}

	if s.cache != nil {
		if err := s.cache.GetOrSet(ctx, constants.BuildRoomRateKey(id.String()), constants.TTL_ROOM_RATE, fetch, &info); err != nil {
			return nil, err
		}
	} else {
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		info = *data.(*RateInfo)
	}

	if !info.IsAvailable || info.AvailableRoomCount <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoomUnavailable, info.Name)
	}
	return &info, nil
}

func (s *service) CreateRoom(ctx context.Context, req RoomRequest) (*Room, error) {
	category, err := parseRoomCategory(req.Category)
	if err != nil {
		return nil, err
	}

	room := &Room{ID: uuid.New(), IsAvailable: true}
	if err := applyRoomRequest(room, req, category); err != nil {
		return nil, err
	}

	room.Slug, err = s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateListings(ctx)
	s.log.Info("Room created", "room_id", room.ID.String(), "category", room.Category.String())
	return room, nil
}

func (s *service) UpdateRoom(ctx context.Context, id uuid.UUID, req RoomRequest) (*Room, error) {
	category, err := parseRoomCategory(req.Category)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	renamed := slug.Make(req.Name) != room.Slug
	if err := applyRoomRequest(room, req, category); err != nil {
		return nil, err
	}
	if renamed {
		if room.Slug, err = s.uniqueSlug(ctx, req.Name); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	s.InvalidateRoom(ctx, id)
	return room, nil
}

func (s *service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateRoom(ctx, id)
	return nil
}

// GetRoom accepts either the room UUID or its slug
func (s *service) GetRoom(ctx context.Context, idOrSlug string) (*Room, error) {
	id, err := uuid.Parse(idOrSlug)
	if err != nil {
		return s.repo.GetBySlug(ctx, idOrSlug)
	}
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var room Room
	err = s.cache.GetOrSet(ctx, constants.BuildRoomDetailKey(id.String()), constants.TTL_ROOM_DETAIL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &room)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListAvailableRooms is the public listing, cached per page
func (s *service) ListAvailableRooms(ctx context.Context, page, limit int) (*RoomListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	filters := RoomFilters{AvailableOnly: true, Page: page, Limit: limit}
	if s.cache == nil {
		return s.ListRooms(ctx, filters)
	}

	var result RoomListResponse
	key := constants.BuildAvailableRoomsKey(page, limit)
	err := s.cache.GetOrSet(ctx, key, constants.TTL_ROOMS_AVAILABLE, func() (interface{}, error) {
		return s.ListRooms(ctx, filters)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ListRooms(ctx context.Context, filters RoomFilters) (*RoomListResponse, error) {
	if filters.Page == 0 {
		filters.Page = 1
	}
	if filters.Limit == 0 {
		filters.Limit = 20
	}
	if filters.Category != "" {
		category, err := parseRoomCategory(filters.Category)
		if err != nil {
			return nil, err
		}
		filters.Category = category.String()
	}

	rooms, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return &RoomListResponse{
		Rooms:      rooms,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: int((total + int64(filters.Limit) - 1) / int64(filters.Limit)),
	}, nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Room, error) {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	s.InvalidateRoom(ctx, id)
	return s.repo.GetByID(ctx, id)
}

func (s *service) InvalidateRoom(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.BuildRoomRateKey(id.String()), constants.BuildRoomDetailKey(id.String())); err != nil {
		s.log.Warn("Failed to invalidate room cache", "room_id", id.String(), "error", err)
	}
	s.invalidateListings(ctx)
}

func (s *service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.CACHE_KEY_ROOMS_AVAILABLE+"*"); err != nil {
		s.log.Warn("Failed to invalidate room listings", "error", err)
	}
}

func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", fmt.Errorf("%w: name must contain letters or digits", ErrInvalidRoom)
	}

	candidate := base
	for i := 2; i < 100; i++ {
		_, err := s.repo.GetBySlug(ctx, candidate)
		if errors.Is(err, ErrRoomNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

// parseRoomCategory is strict: unlike pricing.ParseCategory it refuses
// names that would silently become STANDARD.
func parseRoomCategory(name string) (pricing.Category, error) {
	category := pricing.ParseCategory(name)
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(strings.TrimSpace(name)))
	if category.String() != normalized {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidRoom, name)
	}
	return category, nil
}

func applyRoomRequest(room *Room, req RoomRequest, category pricing.Category) error {
	available := req.TotalRooms
	if req.AvailableRooms != nil {
		available = *req.AvailableRooms
	}
	if available > req.TotalRooms {
		return fmt.Errorf("%w: available rooms cannot exceed total rooms", ErrInvalidRoom)
	}

	room.Name = strings.TrimSpace(req.Name)
	room.Category = category
	room.Description = req.Description
	room.NightlyRate = req.NightlyRate
	room.BreakfastRate = req.BreakfastRate
	room.TotalRooms = req.TotalRooms
	room.AvailableRooms = available
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	return nil
}
