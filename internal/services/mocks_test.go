package services

import (
	"context"
	"time"

	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the service test suites.

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.Profile, error) {
	args := m.Called(ctx, role, limit, offset)
	return args.Get(0).([]*models.Profile), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *models.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.OwnerRequestView, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]*models.OwnerRequestView), args.Error(1)
}

func (m *MockRequestRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.TenantRequestView, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.TenantRequestView), args.Error(1)
}

func (m *MockRequestRepository) CountByOwnerStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockRequestEventRepository struct {
	mock.Mock
}

func (m *MockRequestEventRepository) Create(ctx context.Context, event *models.RequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRequestEventRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*models.RequestEvent, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]*models.RequestEvent), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *models.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Room, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomRepository) Search(ctx context.Context, filter *models.RoomSearchFilter) ([]*models.Room, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) GetActiveRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockCacheService) SetRoom(ctx context.Context, room *models.Room, ttl time.Duration) error {
	args := m.Called(ctx, room, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateRooms(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetOwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*models.OwnerDashboard, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OwnerDashboard), args.Error(1)
}

func (m *MockCacheService) SetOwnerDashboard(ctx context.Context, dashboard *models.OwnerDashboard, ttl time.Duration) error {
	args := m.Called(ctx, dashboard, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteOwnerDashboard(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
