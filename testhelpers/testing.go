package testhelpers

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=roomlink_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestUser creates a user row and returns its ID.
func SetupTestUser(t *testing.T, db *TestDB, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := db.Pool.Exec(context.Background(), query, userID, email, "not-a-real-hash", time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// SetupTestProfile creates a profile with the given role for a user.
func SetupTestProfile(t *testing.T, db *TestDB, userID uuid.UUID, role, name string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		Name:      name,
		Email:     name + "@example.com",
		Phone:     "9876543210",
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO profiles (id, user_id, role, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		profile.ID, profile.UserID, profile.Role, profile.Name, profile.Email, profile.Phone, profile.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return profile
}

// SetupTestRoom creates an active room owned by the given owner profile.
func SetupTestRoom(t *testing.T, db *TestDB, ownerID uuid.UUID) *models.Room {
	t.Helper()

	room := &models.Room{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		AddressLine: "12 Test Street",
		City:        "Test City",
		District:    "Test District",
		State:       "Test State",
		Pincode:     "560001",
		Rent:        5000,
		RoomType:    models.RoomTypeStudent,
		Features:    models.RoomFeatures{Wifi: true, Water: true},
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	features, err := json.Marshal(room.Features)
	if err != nil {
		t.Fatalf("Failed to marshal features: %v", err)
	}

	query := `
		INSERT INTO rooms (id, owner_id, address_line, city, district, state, pincode, rent, room_type, features, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = db.Pool.Exec(context.Background(), query,
		room.ID, room.OwnerID, room.AddressLine, room.City, room.District, room.State,
		room.Pincode, room.Rent, room.RoomType, features, room.IsActive, room.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test room: %v", err)
	}

	return room
}

// SetupTestRequest creates a pending request from a tenant against a room.
func SetupTestRequest(t *testing.T, db *TestDB, room *models.Room, tenantID uuid.UUID) *models.Request {
	t.Helper()

	request := &models.Request{
		ID:        uuid.New(),
		RoomID:    room.ID,
		TenantID:  tenantID,
		OwnerID:   room.OwnerID,
		Status:    models.RequestStatusPending,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO requests (id, room_id, tenant_id, owner_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		request.ID, request.RoomID, request.TenantID, request.OwnerID,
		request.Message, request.Status, request.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test request: %v", err)
	}

	return request
}
