package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles. A profile's role is fixed at creation; there is no
// role-change path.
const (
	RoleTenant = "tenant"
	RoleOwner  = "owner"
)

// Profile maps an authenticated user to a marketplace identity.
// Exactly one profile exists per user.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is part of the closed role vocabulary.
func ValidRole(role string) bool {
	return role == RoleTenant || role == RoleOwner
}
