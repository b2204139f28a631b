package models

import (
	"time"

	"github.com/google/uuid"
)

// Request statuses. pending is the only non-terminal state; accepted and
// rejected are terminal and never transition again.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// Owner decisions on a pending request.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Request is a tenant's expression of interest in one room. owner_id is
// denormalized from the room at creation time. Requests are never deleted.
type Request struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	RoomID    uuid.UUID  `json:"room_id" db:"room_id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	OwnerID   uuid.UUID  `json:"owner_id" db:"owner_id"`
	Message   *string    `json:"message" db:"message"`
	Status    string     `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DecidedAt *time.Time `json:"decided_at" db:"decided_at"`
}

// RoomSummary is the slice of room data joined into request listings.
type RoomSummary struct {
	RoomID      uuid.UUID `json:"room_id"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	Rent        float64   `json:"rent"`
	RoomType    string    `json:"room_type"`
	IsActive    bool      `json:"is_active"`
}

// OwnerRequestView is a request as seen by the owning owner. Tenant contact
// fields are populated by the store only for accepted requests; for pending
// and rejected requests they are nil before the row ever leaves the backend.
type OwnerRequestView struct {
	Request
	TenantName  string      `json:"tenant_name"`
	TenantEmail *string     `json:"tenant_email,omitempty"`
	TenantPhone *string     `json:"tenant_phone,omitempty"`
	Room        RoomSummary `json:"room"`
}

// TenantRequestView is a request as seen by the tenant who created it.
type TenantRequestView struct {
	Request
	Room RoomSummary `json:"room"`
}

// ValidDecision reports whether decision is accept or reject.
func ValidDecision(decision string) bool {
	return decision == DecisionAccept || decision == DecisionReject
}

// StatusForDecision maps an owner decision onto the terminal status it
// produces.
func StatusForDecision(decision string) string {
	if decision == DecisionAccept {
		return RequestStatusAccepted
	}
	return RequestStatusRejected
}
