package models

import (
	"time"

	"github.com/google/uuid"
)

// OwnerDashboard aggregates an owner's listing and request state. Computed
// by the analytics service and cached; the background scheduler keeps it
// warm.
type OwnerDashboard struct {
	OwnerID          uuid.UUID `json:"owner_id"`
	ActiveListings   int       `json:"active_listings"`
	InactiveListings int       `json:"inactive_listings"`
	PendingRequests  int       `json:"pending_requests"`
	AcceptedRequests int       `json:"accepted_requests"`
	RejectedRequests int       `json:"rejected_requests"`
	RefreshedAt      time.Time `json:"refreshed_at"`
}
