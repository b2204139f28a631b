package analytics

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

const dashboardTTL = 10 * time.Minute

// DashboardService aggregates an owner's listing and request counts. Reads
// go through the cache; the background scheduler refreshes warm entries.
type DashboardService struct {
	roomRepo    repositories.RoomRepository
	requestRepo repositories.RequestRepository
	cacheSvc    caching.CacheService
}

func NewDashboardService(roomRepo repositories.RoomRepository, requestRepo repositories.RequestRepository,
	cacheSvc caching.CacheService) *DashboardService {
	return &DashboardService{
		roomRepo:    roomRepo,
		requestRepo: requestRepo,
		cacheSvc:    cacheSvc,
	}
}

// OwnerDashboard returns the cached dashboard, computing it on a miss.
func (s *DashboardService) OwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*models.OwnerDashboard, error) {
	if cached, err := s.cacheSvc.GetOwnerDashboard(ctx, ownerID); err == nil && cached != nil {
		return cached, nil
	}
	return s.RefreshOwnerDashboard(ctx, ownerID)
}

// RefreshOwnerDashboard recomputes the aggregates and rewrites the cache.
func (s *DashboardService) RefreshOwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*models.OwnerDashboard, error) {
	active, inactive, err := s.roomRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	counts, err := s.requestRepo.CountByOwnerStatus(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	dashboard := &models.OwnerDashboard{
		OwnerID:          ownerID,
		ActiveListings:   active,
		InactiveListings: inactive,
		PendingRequests:  counts[models.RequestStatusPending],
		AcceptedRequests: counts[models.RequestStatusAccepted],
		RejectedRequests: counts[models.RequestStatusRejected],
		RefreshedAt:      time.Now(),
	}

	if err := s.cacheSvc.SetOwnerDashboard(ctx, dashboard, dashboardTTL); err != nil {
		log.Printf("Failed to cache dashboard for owner %s: %v", ownerID, err)
	}
	return dashboard, nil
}
