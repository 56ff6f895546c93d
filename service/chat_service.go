package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/catalog"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// CatalogSourceInterface provides the catalog the assistant answers from
type CatalogSourceInterface interface {
	Current() (catalog.Snapshot, bool)
}

// ChatService answers guest questions through the assistant
type ChatService struct {
	client  AssistantClientInterface
	catalog CatalogSourceInterface
}

// NewChatService creates a new ChatService. A nil client answers every question with the fallback.
func NewChatService(client AssistantClientInterface, source CatalogSourceInterface) *ChatService {
	return &ChatService{client: client, catalog: source}
}

type catalogRoomView struct {
	ID          string   `json:"id"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion,omitempty"`
	Price       int64    `json:"precio"`
	Capacity    int      `json:"capacidad"`
	Beds        int      `json:"camas"`
	Amenities   []string `json:"comodidades,omitempty"`
}

type catalogServiceView struct {
	Name  string `json:"nombre"`
	Price int64  `json:"precio"`
}

// Reply sends the conversation with the catalog and returns the parsed answer.
// Any failure of the assistant degrades to the fallback reply.
func (s *ChatService) Reply(ctx context.Context, history []models.ChatMessage) *models.ChatReply {
	log.Printf("📥 ChatService.Reply: messages=%d", len(history))

	if s.client == nil {
		return fallbackReply()
	}

	snap, _ := s.currentCatalog()
	instruction, err := buildInstruction(snap)
	if err != nil {
		log.Printf("❌ ChatService.Reply: %v", err)
		return fallbackReply()
	}

	raw, err := s.client.Generate(ctx, instruction, history)
	if err != nil {
		log.Printf("❌ ChatService.Reply: assistant failed: %v", err)
		return fallbackReply()
	}

	reply, err := ParseAssistantReply(raw, snap.AvailableRooms())
	if err != nil {
		log.Printf("⚠️  ChatService.Reply: unreadable assistant output: %v", err)
		return fallbackReply()
	}
	return reply
}

func (s *ChatService) currentCatalog() (catalog.Snapshot, bool) {
	if s.catalog == nil {
		return catalog.Snapshot{}, false
	}
	return s.catalog.Current()
}

func buildInstruction(snap catalog.Snapshot) (string, error) {
	view := struct {
		Rooms    []catalogRoomView    `json:"habitaciones"`
		Services []catalogServiceView `json:"servicios"`
	}{
		Rooms:    []catalogRoomView{},
		Services: []catalogServiceView{},
	}
	for _, r := range snap.AvailableRooms() {
		view.Rooms = append(view.Rooms, catalogRoomView{
			ID: r.ID, Name: r.Name, Description: r.Description, Price: r.PricePerNight,
			Capacity: r.Capacity, Beds: r.BedCount, Amenities: r.Amenities,
		})
	}
	for _, svc := range snap.Services {
		view.Services = append(view.Services, catalogServiceView{Name: svc.Name, Price: svc.Price})
	}

	data, err := json.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("encode catalog: %w", err)
	}
	return assistantInstruction + "\n\nCatálogo actual:\n" + string(data), nil
}

type assistantPayload struct {
	Answer     string          `json:"Respuesta"`
	Suggestion string          `json:"Sugerencia"`
	Room       json.RawMessage `json:"Habitacion"`
}

// ParseAssistantReply reads the assistant's JSON object. Markdown code fences around it are
// ignored. A room is resolved against rooms by id, then by name.
func ParseAssistantReply(raw string, rooms []models.Room) (*models.ChatReply, error) {
	text := stripCodeFence(raw)
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		text = text[start : end+1]
	}

	var p assistantPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if strings.TrimSpace(p.Answer) == "" {
		return nil, fmt.Errorf("reply has no Respuesta")
	}

	reply := &models.ChatReply{
		Answer:     strings.TrimSpace(p.Answer),
		Suggestion: strings.TrimSpace(p.Suggestion),
	}
	reply.Room = resolveRoom(p.Room, rooms)
	return reply, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func resolveRoom(raw json.RawMessage, rooms []models.Room) *models.ChatRoomSuggestion {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	id := stringField(fields, "id")
	name := stringField(fields, "nombre", "name")
	for _, r := range rooms {
		if (id != "" && r.ID == id) || (name != "" && strings.EqualFold(r.Name, name)) {
			return &models.ChatRoomSuggestion{ID: r.ID, Name: r.Name, PricePerNight: r.PricePerNight}
		}
	}
	if name == "" {
		return nil
	}
	return &models.ChatRoomSuggestion{ID: id, Name: name, PricePerNight: int64Field(fields, "precio", "price")}
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func int64Field(m map[string]any, keys ...string) int64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			if v > 0 {
				return int64(v)
			}
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

func fallbackReply() *models.ChatReply {
	return &models.ChatReply{Answer: assistantFallback, Fallback: true}
}
