package controller

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/service"
)

// ExtraServiceController handles HTTP requests for add-ons
type ExtraServiceController struct {
	repository repository.ExtraServiceRepositoryInterface
	images     *service.ImageService
	clock      clock.Clock
}

// NewExtraServiceController creates a new ExtraServiceController
func NewExtraServiceController(repo repository.ExtraServiceRepositoryInterface, images *service.ImageService, clk clock.Clock) *ExtraServiceController {
	return &ExtraServiceController{
		repository: repo,
		images:     images,
		clock:      clk,
	}
}

// ListActive handles GET /services
// Example response:
// {"services": [{"id": "b2...", "name": "Desayuno", "price": 20, "category": "comida", "active": true}]}
func (c *ExtraServiceController) ListActive(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, true)
}

// ListAll handles GET /admin/services, including disabled add-ons
func (c *ExtraServiceController) ListAll(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, false)
}

func (c *ExtraServiceController) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	log.Printf("📥 ListServices: Received %s request to %s", r.Method, r.URL.Path)

	services, err := c.repository.List(r.Context(), activeOnly)
	if err != nil {
		log.Printf("❌ ListServices: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, models.ExtraServiceListResponse{Services: services})
}

// Create handles POST /admin/services
// Example request:
// {"name": "Desayuno", "price": 20, "category": "comida", "active": true}
func (c *ExtraServiceController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateService: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ExtraServiceRequest
	if !decodeBody(w, r, "CreateService", &req) {
		return
	}

	svc := serviceFromRequest(req)
	svc.ID = uuid.NewString()
	svc.CreatedAt = c.clock.Now()
	if err := c.repository.Create(r.Context(), &svc); err != nil {
		log.Printf("❌ CreateService: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ CreateService: id=%s", svc.ID)
	response.JSON(w, http.StatusCreated, svc)
}

// Update handles PUT /admin/services/{id}. Reservations keep the price they were booked with.
func (c *ExtraServiceController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateService: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ExtraServiceRequest
	if !decodeBody(w, r, "UpdateService", &req) {
		return
	}

	svc := serviceFromRequest(req)
	svc.ID = r.PathValue("id")
	if err := c.repository.Update(r.Context(), &svc); err != nil {
		log.Printf("❌ UpdateService: %v", err)
		response.FromError(w, err)
		return
	}

	updated, err := c.repository.GetByID(r.Context(), svc.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /admin/services/{id}
func (c *ExtraServiceController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteService: Received %s request to %s", r.Method, r.URL.Path)

	id := r.PathValue("id")
	svc, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := c.repository.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	c.images.Remove(r.Context(), svc.ImagePath)
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /admin/services/{id}/image (multipart field "image")
func (c *ExtraServiceController) UploadImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadServiceImage: Received %s request to %s", r.Method, r.URL.Path)

	data, ok := readImageUpload(w, r, "UploadServiceImage")
	if !ok {
		return
	}
	stored, err := c.images.Replace(r.Context(), c.repository, "service", r.PathValue("id"), data)
	if err != nil {
		log.Printf("❌ UploadServiceImage: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"imageUrl": stored.URL, "imagePath": stored.Path})
}

// ClearImage handles DELETE /admin/services/{id}/image
func (c *ExtraServiceController) ClearImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ClearServiceImage: Received %s request to %s", r.Method, r.URL.Path)

	if err := c.images.Clear(r.Context(), c.repository, r.PathValue("id")); err != nil {
		log.Printf("❌ ClearServiceImage: %v", err)
		response.FromError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func serviceFromRequest(req models.ExtraServiceRequest) models.ExtraService {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return models.ExtraService{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Active:      active,
	}
}
