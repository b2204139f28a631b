package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"roomlink/internal/caching"
	"roomlink/internal/common"
	"roomlink/internal/models"
	"roomlink/internal/repositories"

	"github.com/google/uuid"
)

// Every lifecycle operation is bounded; an abandoned client call must not
// pin a connection.
const requestOpTimeout = 5 * time.Second

// ListingStore is the slice of the listing store the lifecycle needs: room
// resolution for create preconditions and owner_id denormalization.
type ListingStore interface {
	GetActiveRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
}

// RequestService is the interest-request lifecycle between a tenant and an
// owner for one room: pending -> accepted | rejected, one way, terminal.
// Ownership and role checks happen here, not in the store.
type RequestService interface {
	Create(ctx context.Context, input *CreateRequestInput) (*models.Request, error)
	Decide(ctx context.Context, requestID uuid.UUID, decision string) (*models.Request, error)
	ListForOwner(ctx context.Context, limit, offset int) ([]*models.OwnerRequestView, error)
	ListForTenant(ctx context.Context, limit, offset int) ([]*models.TenantRequestView, error)
	Events(ctx context.Context, requestID uuid.UUID) ([]*models.RequestEvent, error)
}

type CreateRequestInput struct {
	RoomID  uuid.UUID `json:"room_id"`
	Message *string   `json:"message"`
}

type requestService struct {
	requestRepo repositories.RequestRepository
	eventRepo   repositories.RequestEventRepository
	profileRepo repositories.ProfileRepository
	listings    ListingStore
	cacheSvc    caching.CacheService
}

func NewRequestService(requestRepo repositories.RequestRepository, eventRepo repositories.RequestEventRepository,
	profileRepo repositories.ProfileRepository, listings ListingStore, cacheSvc caching.CacheService) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		listings:    listings,
		cacheSvc:    cacheSvc,
	}
}

// Create opens a new pending request by the calling tenant against an
// active room. A tenant may hold multiple pending requests for the same
// room; the original marketplace allowed it and this keeps that behavior.
func (s *requestService) Create(ctx context.Context, input *CreateRequestInput) (*models.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, requestOpTimeout)
	defer cancel()

	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleTenant {
		return nil, fmt.Errorf("%w: only tenants may create requests", common.ErrForbidden)
	}

	if input.RoomID == uuid.Nil {
		return nil, fmt.Errorf("%w: room_id is required", common.ErrValidation)
	}
	if err := common.SanitizeHTMLField(input.Message, "message"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	room, err := s.listings.GetActiveRoom(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Inactive and missing rooms are indistinguishable on purpose
			return nil, fmt.Errorf("%w: room does not resolve to an active listing", common.ErrValidation)
		}
		return nil, err
	}

	request := &models.Request{
		ID:        uuid.New(),
		RoomID:    room.ID,
		TenantID:  profile.ID,
		OwnerID:   room.OwnerID, // denormalized at creation time
		Message:   input.Message,
		Status:    models.RequestStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	s.recordEvent(ctx, request.ID, profile.ID, models.RequestEventCreated)
	if err := s.cacheSvc.DeleteOwnerDashboard(ctx, room.OwnerID); err != nil {
		log.Printf("Failed to invalidate dashboard for owner %s: %v", room.OwnerID, err)
	}
	return request, nil
}

// Decide moves a pending request to accepted or rejected. Only the owning
// owner may decide, and a terminal request never transitions again: retries
// of a decision fail with an invalid-transition error rather than silently
// succeeding. The transition itself is one conditional update, so of two
// racing decisions exactly one wins; it is never retried.
func (s *requestService) Decide(ctx context.Context, requestID uuid.UUID, decision string) (*models.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, requestOpTimeout)
	defer cancel()

	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}

	if !models.ValidDecision(decision) {
		return nil, fmt.Errorf("%w: decision must be accept or reject", common.ErrValidation)
	}

	var request *models.Request
	err = common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		request, err = s.requestRepo.GetByID(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if request == nil {
		return nil, fmt.Errorf("%w: request", common.ErrNotFound)
	}

	if request.OwnerID != profile.ID {
		return nil, fmt.Errorf("%w: request targets another owner", common.ErrForbidden)
	}
	if request.Status != models.RequestStatusPending {
		return nil, fmt.Errorf("%w: request is already %s", common.ErrInvalidTransition, request.Status)
	}

	status := models.StatusForDecision(decision)
	won, err := s.requestRepo.UpdateStatusIfPending(ctx, requestID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if !won {
		// A concurrent decision got there first
		return nil, fmt.Errorf("%w: request is no longer pending", common.ErrInvalidTransition)
	}

	now := time.Now()
	request.Status = status
	request.DecidedAt = &now

	action := models.RequestEventRejected
	if status == models.RequestStatusAccepted {
		action = models.RequestEventAccepted
	}
	s.recordEvent(ctx, request.ID, profile.ID, action)
	if err := s.cacheSvc.DeleteOwnerDashboard(ctx, profile.ID); err != nil {
		log.Printf("Failed to invalidate dashboard for owner %s: %v", profile.ID, err)
	}
	return request, nil
}

// ListForOwner returns the requests targeting the calling owner. Tenant
// contact details are withheld by the store itself for anything that is
// not accepted.
func (s *requestService) ListForOwner(ctx context.Context, limit, offset int) ([]*models.OwnerRequestView, error) {
	ctx, cancel := context.WithTimeout(ctx, requestOpTimeout)
	defer cancel()

	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleOwner {
		return nil, fmt.Errorf("%w: not an owner", common.ErrForbidden)
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)
	var views []*models.OwnerRequestView
	err = common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		views, err = s.requestRepo.ListForOwner(ctx, profile.ID, limit, offset)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return views, nil
}

// ListForTenant returns the requests the calling tenant created.
func (s *requestService) ListForTenant(ctx context.Context, limit, offset int) ([]*models.TenantRequestView, error) {
	ctx, cancel := context.WithTimeout(ctx, requestOpTimeout)
	defer cancel()

	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.Role != models.RoleTenant {
		return nil, fmt.Errorf("%w: not a tenant", common.ErrForbidden)
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)
	var views []*models.TenantRequestView
	err = common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		views, err = s.requestRepo.ListForTenant(ctx, profile.ID, limit, offset)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return views, nil
}

// Events returns the audit trail of one request to either party.
func (s *requestService) Events(ctx context.Context, requestID uuid.UUID) ([]*models.RequestEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, requestOpTimeout)
	defer cancel()

	profile, err := s.resolveProfile(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if request == nil {
		return nil, fmt.Errorf("%w: request", common.ErrNotFound)
	}
	if request.OwnerID != profile.ID && request.TenantID != profile.ID {
		return nil, fmt.Errorf("%w: not a party to this request", common.ErrForbidden)
	}

	events, err := s.eventRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return events, nil
}

func (s *requestService) resolveProfile(ctx context.Context) (*models.Profile, error) {
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

// recordEvent appends to the audit trail best-effort; a failed event write
// never fails the lifecycle operation it describes.
func (s *requestService) recordEvent(ctx context.Context, requestID, actorID uuid.UUID, action string) {
	event := &models.RequestEvent{
		ID:        uuid.New(),
		RequestID: requestID,
		ActorID:   actorID,
		Action:    action,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		log.Printf("Failed to record %s event for request %s: %v", action, requestID, err)
	}
}
