package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Room types. "both" means the room is open to students and families alike.
const (
	RoomTypeStudent = "student"
	RoomTypeFamily  = "family"
	RoomTypeBoth    = "both"
)

// RoomFeatures is the closed amenity vocabulary. Stored as jsonb; anything
// outside these six flags is rejected at bind time rather than persisted as
// an open-ended bag.
type RoomFeatures struct {
	Wifi        bool `json:"wifi"`
	Electricity bool `json:"electricity"`
	Water       bool `json:"water"`
	Parking     bool `json:"parking"`
	Furnished   bool `json:"furnished"`
	Security    bool `json:"security"`
}

type Room struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	OwnerID     uuid.UUID    `json:"owner_id" db:"owner_id"`
	AddressLine string       `json:"address_line" db:"address_line"`
	City        string       `json:"city" db:"city"`
	District    string       `json:"district" db:"district"`
	Taluka      string       `json:"taluka" db:"taluka"`
	State       string       `json:"state" db:"state"`
	Pincode     string       `json:"pincode" db:"pincode"`
	Landmark    *string      `json:"landmark" db:"landmark"`
	Rent        float64      `json:"rent" db:"rent"`
	RoomType    string       `json:"room_type" db:"room_type"`
	Features    RoomFeatures `json:"features" db:"features"`
	IsActive    bool         `json:"is_active" db:"is_active"`
	Images      []string     `json:"images" db:"images"` // URL placeholders only, no upload pipeline
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// RoomSearchFilter holds the tenant-facing search criteria. Only active
// rooms are ever matched.
type RoomSearchFilter struct {
	City        *string       `json:"city,omitempty"`
	District    *string       `json:"district,omitempty"`
	RoomType    *string       `json:"room_type,omitempty"`
	MinRent     *float64      `json:"min_rent,omitempty"`
	MaxRent     *float64      `json:"max_rent,omitempty"`
	Features    *RoomFeatures `json:"features,omitempty"` // set flags are required amenities
	SortBy      string        `json:"sort_by,omitempty"`  // rent, created_at
	SortOrder   string        `json:"sort_order,omitempty"`
	Limit       int           `json:"limit,omitempty"`
	Offset      int           `json:"offset,omitempty"`
}

// ValidRoomType reports whether roomType is part of the closed vocabulary.
func ValidRoomType(roomType string) bool {
	switch roomType {
	case RoomTypeStudent, RoomTypeFamily, RoomTypeBoth:
		return true
	}
	return false
}

func (r *Room) Validate() error {
	if r.Rent <= 0 {
		return fmt.Errorf("rent must be positive")
	}
	if !ValidRoomType(r.RoomType) {
		return fmt.Errorf("room type must be one of: student, family, both")
	}
	return nil
}
