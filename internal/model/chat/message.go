package chat

import "time"

// Turn roles. A message is authored by exactly one of these and is never
// mutated after creation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
