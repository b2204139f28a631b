package models

import (
	"time"

	"github.com/google/uuid"
)

// Request lifecycle audit actions.
const (
	RequestEventCreated  = "created"
	RequestEventAccepted = "accepted"
	RequestEventRejected = "rejected"
)

// RequestEvent records one lifecycle transition for audit purposes. Events
// are append-only.
type RequestEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RequestID uuid.UUID `json:"request_id" db:"request_id"`
	ActorID   uuid.UUID `json:"actor_id" db:"actor_id"`
	Action    string    `json:"action" db:"action"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
