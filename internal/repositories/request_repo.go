package repositories

import (
	"context"
	"errors"

	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error)
	// UpdateStatusIfPending performs the pending -> terminal transition as a
	// single conditional update. It returns false when the request was no
	// longer pending, which is how a lost decision race surfaces.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status string) (bool, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.OwnerRequestView, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.TenantRequestView, error)
	CountByOwnerStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error)
}

type requestRepo struct {
	db Database
}

func NewRequestRepository(db Database) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, request *models.Request) error {
	query := `
		INSERT INTO requests (id, room_id, tenant_id, owner_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.RoomID, request.TenantID, request.OwnerID, request.Message, request.Status)
	return err
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	request := &models.Request{}
	query := `
		SELECT id, room_id, tenant_id, owner_id, message, status, created_at, decided_at
		FROM requests
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&request.ID, &request.RoomID, &request.TenantID,
		&request.OwnerID, &request.Message, &request.Status, &request.CreatedAt, &request.DecidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return request, nil
}

func (r *requestRepo) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	query := `
		UPDATE requests
		SET status = $2, decided_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListForOwner joins in the tenant profile and a room summary. Contact
// fields are nulled inside the query for anything that is not accepted, so
// withheld data never leaves the store.
func (r *requestRepo) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.OwnerRequestView, error) {
	query := `
		SELECT q.id, q.room_id, q.tenant_id, q.owner_id, q.message, q.status, q.created_at, q.decided_at,
			t.name,
			CASE WHEN q.status = 'accepted' THEN t.email END,
			CASE WHEN q.status = 'accepted' THEN t.phone END,
			r.id, r.address_line, r.city, r.rent, r.room_type, r.is_active
		FROM requests q
		JOIN profiles t ON t.id = q.tenant_id
		JOIN rooms r ON r.id = q.room_id
		WHERE q.owner_id = $1
		ORDER BY q.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*models.OwnerRequestView
	for rows.Next() {
		view := &models.OwnerRequestView{}
		if err := rows.Scan(&view.ID, &view.RoomID, &view.TenantID, &view.OwnerID, &view.Message,
			&view.Status, &view.CreatedAt, &view.DecidedAt,
			&view.TenantName, &view.TenantEmail, &view.TenantPhone,
			&view.Room.RoomID, &view.Room.AddressLine, &view.Room.City, &view.Room.Rent,
			&view.Room.RoomType, &view.Room.IsActive); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *requestRepo) ListForTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.TenantRequestView, error) {
	query := `
		SELECT q.id, q.room_id, q.tenant_id, q.owner_id, q.message, q.status, q.created_at, q.decided_at,
			r.id, r.address_line, r.city, r.rent, r.room_type, r.is_active
		FROM requests q
		JOIN rooms r ON r.id = q.room_id
		WHERE q.tenant_id = $1
		ORDER BY q.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*models.TenantRequestView
	for rows.Next() {
		view := &models.TenantRequestView{}
		if err := rows.Scan(&view.ID, &view.RoomID, &view.TenantID, &view.OwnerID, &view.Message,
			&view.Status, &view.CreatedAt, &view.DecidedAt,
			&view.Room.RoomID, &view.Room.AddressLine, &view.Room.City, &view.Room.Rent,
			&view.Room.RoomType, &view.Room.IsActive); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *requestRepo) CountByOwnerStatus(ctx context.Context, ownerID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM requests
		WHERE owner_id = $1
		GROUP BY status
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
