package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"roomlink/internal/common"
	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Room, error)
	Search(ctx context.Context, filter *models.RoomSearchFilter) ([]*models.Room, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (active int, inactive int, err error)
}

type roomRepo struct {
	db Database
}

func NewRoomRepository(db Database) RoomRepository {
	return &roomRepo{db: db}
}

const roomColumns = `id, owner_id, address_line, city, district, taluka, state, pincode, landmark, rent, room_type, features, is_active, images, created_at, updated_at`

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, owner_id, address_line, city, district, taluka, state, pincode, landmark, rent, room_type, features, is_active, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	features, err := json.Marshal(room.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}
	_, err = r.db.Exec(ctx, query,
		room.ID, room.OwnerID, room.AddressLine, room.City, room.District, room.Taluka,
		room.State, room.Pincode, room.Landmark, room.Rent, room.RoomType, features,
		room.IsActive, room.Images)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return scanRoomRow(r.db.QueryRow(ctx, query, id))
}

// GetActiveByID resolves a room only while it is visible to tenants.
func (r *roomRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 AND is_active = TRUE`
	return scanRoomRow(r.db.QueryRow(ctx, query, id))
}

// Delete removes a room only when it belongs to ownerID. The boolean result
// reports whether a row was actually deleted.
func (r *roomRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM rooms WHERE owner_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, ownerID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *roomRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

// Search builds the tenant-facing filtered query dynamically. Only active
// rooms are matched; sort fields come from an allow list.
func (r *roomRepo) Search(ctx context.Context, filter *models.RoomSearchFilter) ([]*models.Room, error) {
	queryBase := `
		SELECT r.id, r.owner_id, r.address_line, r.city, r.district, r.taluka, r.state, r.pincode, r.landmark, r.rent, r.room_type, r.features, r.is_active, r.images, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.is_active = TRUE
	`
	args := []any{}
	argN := 0

	next := func() string {
		argN++
		return fmt.Sprintf("$%d", argN)
	}

	if filter.City != nil && *filter.City != "" {
		queryBase += ` AND r.city ILIKE ` + next()
		args = append(args, *filter.City)
	}
	if filter.District != nil && *filter.District != "" {
		queryBase += ` AND r.district ILIKE ` + next()
		args = append(args, *filter.District)
	}
	if filter.RoomType != nil && *filter.RoomType != "" {
		// "both" listings match student and family searches as well
		queryBase += ` AND (r.room_type = ` + next() + ` OR r.room_type = 'both')`
		args = append(args, *filter.RoomType)
	}
	if filter.MinRent != nil {
		queryBase += ` AND r.rent >= ` + next()
		args = append(args, *filter.MinRent)
	}
	if filter.MaxRent != nil {
		queryBase += ` AND r.rent <= ` + next()
		args = append(args, *filter.MaxRent)
	}
	if filter.Features != nil {
		// required amenities: jsonb containment over the set flags
		required := map[string]bool{}
		for name, set := range map[string]bool{
			"wifi":        filter.Features.Wifi,
			"electricity": filter.Features.Electricity,
			"water":       filter.Features.Water,
			"parking":     filter.Features.Parking,
			"furnished":   filter.Features.Furnished,
			"security":    filter.Features.Security,
		} {
			if set {
				required[name] = true
			}
		}
		if len(required) > 0 {
			requiredJSON, err := json.Marshal(required)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal feature filter: %w", err)
			}
			queryBase += ` AND r.features @> ` + next()
			args = append(args, requiredJSON)
		}
	}

	limit, offset := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	sortField := common.ValidateSortField(filter.SortBy)
	sortOrder := common.ValidateSortOrder(filter.SortOrder)
	queryBase += fmt.Sprintf(" ORDER BY %s %s", sortField, sortOrder)
	queryBase += ` LIMIT ` + next()
	args = append(args, limit)
	queryBase += ` OFFSET ` + next()
	args = append(args, offset)

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRooms(rows)
}

func (r *roomRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE is_active), COUNT(*) FILTER (WHERE NOT is_active)
		FROM rooms
		WHERE owner_id = $1
	`
	var active, inactive int
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&active, &inactive); err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}

func scanRoomRow(row pgx.Row) (*models.Room, error) {
	room := &models.Room{}
	var features []byte
	err := row.Scan(&room.ID, &room.OwnerID, &room.AddressLine, &room.City, &room.District,
		&room.Taluka, &room.State, &room.Pincode, &room.Landmark, &room.Rent, &room.RoomType,
		&features, &room.IsActive, &room.Images, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &room.Features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal features: %w", err)
		}
	}
	return room, nil
}

func scanRooms(rows pgx.Rows) ([]*models.Room, error) {
	var rooms []*models.Room
	for rows.Next() {
		room := &models.Room{}
		var features []byte
		if err := rows.Scan(&room.ID, &room.OwnerID, &room.AddressLine, &room.City, &room.District,
			&room.Taluka, &room.State, &room.Pincode, &room.Landmark, &room.Rent, &room.RoomType,
			&features, &room.IsActive, &room.Images, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		if len(features) > 0 {
			if err := json.Unmarshal(features, &room.Features); err != nil {
				return nil, fmt.Errorf("failed to unmarshal features: %w", err)
			}
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
