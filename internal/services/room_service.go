package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomlink/internal/caching"
	"roomlink/internal/common"
	"roomlink/internal/models"
	"roomlink/internal/repositories"

	"github.com/google/uuid"
)

const roomCacheTTL = 5 * time.Minute

// RoomService is the listing store: owner-scoped CRUD and the tenant-facing
// filtered search. There is no edit path; listings are created and deleted.
type RoomService interface {
	Create(ctx context.Context, input *CreateRoomInput) (*models.Room, error)
	Delete(ctx context.Context, roomID uuid.UUID) error
	// GetActiveRoom resolves a room only while it is visible to tenants.
	// The request lifecycle uses it to validate create preconditions.
	GetActiveRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
	ListMine(ctx context.Context, limit, offset int) ([]*models.Room, error)
	Search(ctx context.Context, filter *models.RoomSearchFilter) ([]*models.Room, error)
}

type CreateRoomInput struct {
	AddressLine string              `json:"address_line"`
	City        string              `json:"city"`
	District    string              `json:"district"`
	Taluka      string              `json:"taluka"`
	State       string              `json:"state"`
	Pincode     string              `json:"pincode"`
	Landmark    *string             `json:"landmark"`
	Rent        float64             `json:"rent"`
	RoomType    string              `json:"room_type"`
	Features    models.RoomFeatures `json:"features"`
	Images      []string            `json:"images"`
}

type roomService struct {
	roomRepo    repositories.RoomRepository
	profileRepo repositories.ProfileRepository
	cacheSvc    caching.CacheService
}

func NewRoomService(roomRepo repositories.RoomRepository, profileRepo repositories.ProfileRepository, cacheSvc caching.CacheService) RoomService {
	return &roomService{
		roomRepo:    roomRepo,
		profileRepo: profileRepo,
		cacheSvc:    cacheSvc,
	}
}

func (s *roomService) Create(ctx context.Context, input *CreateRoomInput) (*models.Room, error) {
	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleOwner {
		return nil, fmt.Errorf("%w: only owners may create listings", common.ErrForbidden)
	}

	for field, value := range map[string]string{
		"address_line": input.AddressLine,
		"city":         input.City,
		"district":     input.District,
		"state":        input.State,
	} {
		if err := common.ValidateRequiredString(value, field); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
	}
	if err := common.ValidatePositiveFloat(input.Rent, "rent", 10000000); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidatePincode(input.Pincode, "pincode"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.SanitizeHTMLField(input.Landmark, "landmark"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	room := &models.Room{
		ID:          uuid.New(),
		OwnerID:     profile.ID,
		AddressLine: input.AddressLine,
		City:        input.City,
		District:    input.District,
		Taluka:      input.Taluka,
		State:       input.State,
		Pincode:     input.Pincode,
		Landmark:    input.Landmark,
		Rent:        input.Rent,
		RoomType:    input.RoomType,
		Features:    input.Features,
		IsActive:    true,
		Images:      input.Images,
	}
	if err := room.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	if err := s.cacheSvc.SetRoom(ctx, room, roomCacheTTL); err != nil {
		log.Printf("Failed to cache room %s: %v", room.ID, err)
	}
	if err := s.cacheSvc.DeleteOwnerDashboard(ctx, profile.ID); err != nil {
		log.Printf("Failed to invalidate dashboard for owner %s: %v", profile.ID, err)
	}
	return room, nil
}

func (s *roomService) Delete(ctx context.Context, roomID uuid.UUID) error {
	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return err
	}
	if profile.Role != models.RoleOwner {
		return fmt.Errorf("%w: only owners may delete listings", common.ErrForbidden)
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if room == nil {
		return fmt.Errorf("%w: room", common.ErrNotFound)
	}
	if room.OwnerID != profile.ID {
		return fmt.Errorf("%w: room belongs to another owner", common.ErrForbidden)
	}

	deleted, err := s.roomRepo.Delete(ctx, profile.ID, roomID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if !deleted {
		return fmt.Errorf("%w: room", common.ErrNotFound)
	}

	if err := s.cacheSvc.DeleteRoom(ctx, roomID); err != nil {
		log.Printf("Failed to evict room %s from cache: %v", roomID, err)
	}
	if err := s.cacheSvc.DeleteOwnerDashboard(ctx, profile.ID); err != nil {
		log.Printf("Failed to invalidate dashboard for owner %s: %v", profile.ID, err)
	}
	return nil
}

func (s *roomService) GetActiveRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	if cached, err := s.cacheSvc.GetRoom(ctx, roomID); err == nil && cached != nil && cached.IsActive {
		return cached, nil
	}

	var room *models.Room
	err := common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		room, err = s.roomRepo.GetActiveByID(ctx, roomID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if room == nil {
		return nil, fmt.Errorf("%w: active room", common.ErrNotFound)
	}

	if err := s.cacheSvc.SetRoom(ctx, room, roomCacheTTL); err != nil {
		log.Printf("Failed to cache room %s: %v", room.ID, err)
	}
	return room, nil
}

func (s *roomService) ListMine(ctx context.Context, limit, offset int) ([]*models.Room, error) {
	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleOwner {
		return nil, fmt.Errorf("%w: only owners have listings", common.ErrForbidden)
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)
	var rooms []*models.Room
	err = common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		rooms, err = s.roomRepo.ListByOwner(ctx, profile.ID, limit, offset)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return rooms, nil
}

func (s *roomService) Search(ctx context.Context, filter *models.RoomSearchFilter) ([]*models.Room, error) {
	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleTenant {
		return nil, fmt.Errorf("%w: search is a tenant surface", common.ErrForbidden)
	}

	if filter.RoomType != nil && *filter.RoomType != "" && !models.ValidRoomType(*filter.RoomType) {
		return nil, fmt.Errorf("%w: room type must be one of: student, family, both", common.ErrValidation)
	}

	var rooms []*models.Room
	err = common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		rooms, err = s.roomRepo.Search(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return rooms, nil
}

func (s *roomService) resolveProfile(ctx context.Context) (*models.Profile, error) {
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return nil, common.ErrNotAuthenticated
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if profile == nil {
		return nil, common.ErrProfileNotFound
	}
	return profile, nil
}
