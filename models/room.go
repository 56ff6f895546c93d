package models

import "time"

// Room statuses
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room represents a row of habitaciones
type Room struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PricePerNight int64     `json:"pricePerNight"`
	Capacity      int       `json:"capacity"`
	BedCount      int       `json:"bedCount"`
	Amenities     []string  `json:"amenities"`
	Status        string    `json:"status"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	ImagePath     string    `json:"imagePath,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RoomRequest is the body for creating or replacing a room
// Example: {"name": "Cabaña del río", "pricePerNight": 100, "capacity": 4, "bedCount": 2, "amenities": ["wifi"], "status": "available"}
type RoomRequest struct {
	Name          string   `json:"name" validate:"required,max=120"`
	Description   string   `json:"description" validate:"max=2000"`
	PricePerNight int64    `json:"pricePerNight" validate:"gte=0"`
	Capacity      int      `json:"capacity" validate:"gte=1,lte=50"`
	BedCount      int      `json:"bedCount" validate:"gte=0"`
	Amenities     []string `json:"amenities" validate:"dive,required"`
	Status        string   `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

// RoomListResponse wraps a list of rooms
type RoomListResponse struct {
	Rooms []Room `json:"rooms"`
}

// IsValidRoomStatus reports whether s is a known room status
func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}
