package chat

import "time"

// Conversation is an ordered sequence of messages owned by a single user.
// UpdatedAt is refreshed on every new turn.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
