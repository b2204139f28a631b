package repositories

import (
	"context"
	"errors"

	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.Profile, error)
}

type profileRepo struct {
	db Database
}

func NewProfileRepository(db Database) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, role, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, profile.ID, profile.UserID, profile.Role, profile.Name, profile.Email, profile.Phone)
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, user_id, role, name, email, phone, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, user_id, role, name, email, phone, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *profileRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*models.Profile, error) {
	query := `
		SELECT id, user_id, role, name, email, phone, created_at, updated_at
		FROM profiles
		WHERE role = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile := &models.Profile{}
		if err := rows.Scan(&profile.ID, &profile.UserID, &profile.Role, &profile.Name, &profile.Email, &profile.Phone, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *profileRepo) scanOne(row pgx.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(&profile.ID, &profile.UserID, &profile.Role, &profile.Name, &profile.Email, &profile.Phone, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}
