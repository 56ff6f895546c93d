package models

import "time"

// Review statuses
const (
	ReviewPending   = "pending"
	ReviewPublished = "published"
	ReviewHidden    = "hidden"
)

// Review represents a row of resenas
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReviewRequest is the body for POST /reviews
// Example: {"rating": 5, "comment": "Excelente atención"}
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

// ModerateReviewRequest is the body for PATCH /admin/reviews/{id}/status
// Example: {"status": "published"}
type ModerateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=published hidden"`
}

// ReviewListResponse wraps a list of reviews
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
}
