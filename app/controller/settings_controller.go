package controller

import (
	"log"
	"net/http"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
)

// SettingsController reads and writes the property settings
type SettingsController struct {
	repository repository.SettingsRepositoryInterface
	clock      clock.Clock
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(repo repository.SettingsRepositoryInterface, clk clock.Clock) *SettingsController {
	return &SettingsController{
		repository: repo,
		clock:      clk,
	}
}

// Get handles GET /settings
// Example response:
// {"id": "default", "name": "Hospedaje", "currencySymbol": "Bs", "primaryColor": "#2f6f4e", "themeMode": "light",
//  "checkInTime": "14:00", "checkOutTime": "11:00"}
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := c.repository.Get(r.Context())
	if err != nil {
		log.Printf("❌ GetSettings: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, settings)
}

// Update handles PUT /admin/settings
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateSettings: Received %s request to %s", r.Method, r.URL.Path)

	var req models.PropertySettings
	if !decodeBody(w, r, "UpdateSettings", &req) {
		return
	}
	req.ID = models.DefaultSettingsID
	req.UpdatedAt = c.clock.Now()

	if err := c.repository.Save(r.Context(), &req); err != nil {
		log.Printf("❌ UpdateSettings: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ UpdateSettings: saved")
	response.JSON(w, http.StatusOK, req)
}
