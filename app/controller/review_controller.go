package controller

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
)

// ReviewController handles guest reviews and their moderation
type ReviewController struct {
	repository repository.ReviewRepositoryInterface
	clock      clock.Clock
}

// NewReviewController creates a new ReviewController
func NewReviewController(repo repository.ReviewRepositoryInterface, clk clock.Clock) *ReviewController {
	return &ReviewController{
		repository: repo,
		clock:      clk,
	}
}

// ListPublished handles GET /reviews
func (c *ReviewController) ListPublished(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, models.ReviewPublished)
}

// List handles GET /admin/reviews?status=pending
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.ReviewPending, models.ReviewPublished, models.ReviewHidden:
	default:
		response.Error(w, http.StatusBadRequest, response.CodeInvalidStatus, "invalid status: "+status)
		return
	}
	c.list(w, r, status)
}

func (c *ReviewController) list(w http.ResponseWriter, r *http.Request, status string) {
	log.Printf("📥 ListReviews: Received %s request to %s", r.Method, r.URL.Path)

	reviews, err := c.repository.List(r.Context(), status)
	if err != nil {
		log.Printf("❌ ListReviews: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, models.ReviewListResponse{Reviews: reviews})
}

// Create handles POST /reviews. New reviews wait for moderation.
// Example request:
// {"rating": 5, "comment": "Excelente atención"}
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateReview: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateReviewRequest
	if !decodeBody(w, r, "CreateReview", &req) {
		return
	}

	s := currentSession(r)
	review := models.Review{
		ID:        uuid.NewString(),
		UserID:    s.User.ID,
		UserName:  s.User.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    models.ReviewPending,
		CreatedAt: c.clock.Now(),
	}
	if err := c.repository.Create(r.Context(), &review); err != nil {
		log.Printf("❌ CreateReview: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, review)
}

// Moderate handles PATCH /admin/reviews/{id}/status
// Example request:
// {"status": "published"}
func (c *ReviewController) Moderate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ModerateReview: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ModerateReviewRequest
	if !decodeBody(w, r, "ModerateReview", &req) {
		return
	}
	review, err := c.repository.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	log.Printf("✅ ModerateReview: id=%s status=%s", review.ID, review.Status)
	response.JSON(w, http.StatusOK, review)
}
