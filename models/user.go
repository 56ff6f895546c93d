package models

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User represents a row of usuarios
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
