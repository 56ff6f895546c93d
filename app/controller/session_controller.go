package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/middleware"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/session"
)

// SessionController opens and closes user sessions
type SessionController struct {
	manager *session.Manager
}

// NewSessionController creates a new SessionController
func NewSessionController(manager *session.Manager) *SessionController {
	return &SessionController{manager: manager}
}

// Start handles POST /session. The identity token comes in the body or as a Bearer header.
// Example request:
// {"token": "eyJhbGciOiJIUzI1NiIs..."}
// Example response:
// {
//   "id": "c3f1...",
//   "user": {"id": "u1", "name": "Ana", "email": "ana@example.com", "role": "guest", "createdAt": "2024-04-20T15:00:00Z"},
//   "theme": {"primaryColor": "#2f6f4e", "mode": "light"},
//   "expiresAt": "2024-04-20T16:00:00Z"
// }
func (c *SessionController) Start(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 StartSession: Received %s request to %s", r.Method, r.URL.Path)

	var token string
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	} else {
		var req models.StartSessionRequest
		if !decodeBody(w, r, "StartSession", &req) {
			return
		}
		token = req.Token
	}

	s, err := c.manager.Start(r.Context(), token)
	if errors.Is(err, session.ErrInvalidToken) {
		response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
		return
	}
	if err != nil {
		log.Printf("❌ StartSession: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, s)
}

// Get handles GET /session
func (c *SessionController) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, currentSession(r))
}

// End handles DELETE /session
func (c *SessionController) End(w http.ResponseWriter, r *http.Request) {
	c.manager.End(r.Header.Get(middleware.SessionHeader))
	w.WriteHeader(http.StatusNoContent)
}
