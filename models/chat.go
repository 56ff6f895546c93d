package models

// Chat roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation with the assistant
type ChatMessage struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required,max=4000"`
}

// ChatRequest is the body for POST /chat
// Example: {"messages": [{"role": "user", "text": "¿Tienen habitaciones para 4 personas?"}]}
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,max=40,dive"`
}

// ChatRoomSuggestion is the room the assistant recommends, if any
type ChatRoomSuggestion struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	PricePerNight int64  `json:"pricePerNight,omitempty"`
}

// ChatReply is the structured assistant answer
type ChatReply struct {
	Answer     string              `json:"answer"`
	Suggestion string              `json:"suggestion,omitempty"`
	Room       *ChatRoomSuggestion `json:"room,omitempty"`
	Fallback   bool                `json:"fallback"`
}
