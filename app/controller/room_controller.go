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

// RoomController handles HTTP requests for rooms
type RoomController struct {
	repository repository.RoomRepositoryInterface
	images     *service.ImageService
	clock      clock.Clock
}

// NewRoomController creates a new RoomController
func NewRoomController(repo repository.RoomRepositoryInterface, images *service.ImageService, clk clock.Clock) *RoomController {
	return &RoomController{
		repository: repo,
		images:     images,
		clock:      clk,
	}
}

// List handles GET /rooms?status=available
// Example response:
// {
//   "rooms": [
//     {"id": "4d1c...", "name": "Cabaña del río", "pricePerNight": 100, "capacity": 4, "bedCount": 2,
//      "amenities": ["wifi"], "status": "available", "imageUrl": "https://drive.google.com/uc?id=..."}
//   ]
// }
func (c *RoomController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListRooms: Received %s request to %s", r.Method, r.URL.Path)

	status := r.URL.Query().Get("status")
	if status != "" && !models.IsValidRoomStatus(status) {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidStatus, "invalid status: "+status)
		return
	}

	rooms, err := c.repository.List(r.Context(), status)
	if err != nil {
		log.Printf("❌ ListRooms: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ ListRooms: %d rooms", len(rooms))
	response.JSON(w, http.StatusOK, models.RoomListResponse{Rooms: rooms})
}

// Get handles GET /rooms/{id}
func (c *RoomController) Get(w http.ResponseWriter, r *http.Request) {
	room, err := c.repository.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, room)
}

// Create handles POST /admin/rooms
// Example request:
// {"name": "Cabaña del río", "pricePerNight": 100, "capacity": 4, "bedCount": 2, "amenities": ["wifi"]}
func (c *RoomController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateRoom: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RoomRequest
	if !decodeBody(w, r, "CreateRoom", &req) {
		return
	}

	now := c.clock.Now()
	room := roomFromRequest(req)
	room.ID = uuid.NewString()
	room.CreatedAt, room.UpdatedAt = now, now

	if err := c.repository.Create(r.Context(), &room); err != nil {
		log.Printf("❌ CreateRoom: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ CreateRoom: id=%s", room.ID)
	response.JSON(w, http.StatusCreated, room)
}

// Update handles PUT /admin/rooms/{id}
func (c *RoomController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateRoom: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RoomRequest
	if !decodeBody(w, r, "UpdateRoom", &req) {
		return
	}

	room := roomFromRequest(req)
	room.ID = r.PathValue("id")
	room.UpdatedAt = c.clock.Now()
	if err := c.repository.Update(r.Context(), &room); err != nil {
		log.Printf("❌ UpdateRoom: %v", err)
		response.FromError(w, err)
		return
	}

	updated, err := c.repository.GetByID(r.Context(), room.ID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /admin/rooms/{id}. Rooms with reservations cannot be deleted.
func (c *RoomController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteRoom: Received %s request to %s", r.Method, r.URL.Path)

	id := r.PathValue("id")
	room, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := c.repository.Delete(r.Context(), id); err != nil {
		log.Printf("❌ DeleteRoom: %v", err)
		response.FromError(w, err)
		return
	}
	c.images.Remove(r.Context(), room.ImagePath)

	log.Printf("✅ DeleteRoom: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /admin/rooms/{id}/image (multipart field "image")
func (c *RoomController) UploadImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UploadRoomImage: Received %s request to %s", r.Method, r.URL.Path)

	data, ok := readImageUpload(w, r, "UploadRoomImage")
	if !ok {
		return
	}
	stored, err := c.images.Replace(r.Context(), c.repository, "room", r.PathValue("id"), data)
	if err != nil {
		log.Printf("❌ UploadRoomImage: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"imageUrl": stored.URL, "imagePath": stored.Path})
}

// ClearImage handles DELETE /admin/rooms/{id}/image
func (c *RoomController) ClearImage(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ClearRoomImage: Received %s request to %s", r.Method, r.URL.Path)

	if err := c.images.Clear(r.Context(), c.repository, r.PathValue("id")); err != nil {
		log.Printf("❌ ClearRoomImage: %v", err)
		response.FromError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func roomFromRequest(req models.RoomRequest) models.Room {
	status := req.Status
	if status == "" {
		status = models.RoomStatusAvailable
	}
	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return models.Room{
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		BedCount:      req.BedCount,
		Amenities:     amenities,
		Status:        status,
	}
}
