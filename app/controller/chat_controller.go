package controller

import (
	"log"
	"net/http"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/service"
)

// ChatController answers guest questions through the assistant
type ChatController struct {
	service *service.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(svc *service.ChatService) *ChatController {
	return &ChatController{service: svc}
}

// Chat handles POST /chat
// Example request:
// {"messages": [{"role": "user", "text": "¿Tienen habitaciones para 4 personas?"}]}
// Example response:
// {
//   "answer": "Sí, la Cabaña del río es para 4 personas.",
//   "suggestion": "¿Quieres reservarla?",
//   "room": {"id": "4d1c...", "name": "Cabaña del río", "pricePerNight": 100},
//   "fallback": false
// }
func (c *ChatController) Chat(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Chat: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ChatRequest
	if !decodeBody(w, r, "Chat", &req) {
		return
	}

	reply := c.service.Reply(r.Context(), req.Messages)
	response.JSON(w, http.StatusOK, reply)
}
