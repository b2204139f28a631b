package repositories

import (
	"context"

	"roomlink/internal/models"

	"github.com/google/uuid"
)

// RequestEventRepository is the append-only audit trail of lifecycle
// transitions.
type RequestEventRepository interface {
	Create(ctx context.Context, event *models.RequestEvent) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*models.RequestEvent, error)
}

type requestEventRepo struct {
	db Database
}

func NewRequestEventRepository(db Database) RequestEventRepository {
	return &requestEventRepo{db: db}
}

func (r *requestEventRepo) Create(ctx context.Context, event *models.RequestEvent) error {
	query := `
		INSERT INTO request_events (id, request_id, actor_id, action, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, event.ID, event.RequestID, event.ActorID, event.Action)
	return err
}

func (r *requestEventRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*models.RequestEvent, error) {
	query := `
		SELECT id, request_id, actor_id, action, created_at
		FROM request_events
		WHERE request_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.RequestEvent
	for rows.Next() {
		event := &models.RequestEvent{}
		if err := rows.Scan(&event.ID, &event.RequestID, &event.ActorID, &event.Action, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
