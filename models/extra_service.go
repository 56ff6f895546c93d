package models

import "time"

// ExtraService represents an optional add-on (servicios) that can be attached to a reservation
type ExtraService struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Category    string    `json:"category,omitempty"`
	Active      bool      `json:"active"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ImagePath   string    `json:"imagePath,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExtraServiceRequest is the body for creating or replacing an add-on
// Example: {"name": "Desayuno", "price": 50, "category": "comida", "active": true}
type ExtraServiceRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Price       int64  `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"max=60"`
	Active      *bool  `json:"active"`
}

// ExtraServiceListResponse wraps a list of add-ons
type ExtraServiceListResponse struct {
	Services []ExtraService `json:"services"`
}

// ServiceSnapshot is the copy of an add-on taken when it is selected.
// Later price edits in the catalog do not change it.
type ServiceSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
