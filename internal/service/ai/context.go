package ai

import (
	"github.com/cloudwego/eino/schema"

	"github.com/aurachat/aura/backend/internal/model/chat"
)

// Turn is one role-tagged transcript entry fed to the context assembler.
type Turn struct {
	Role    string
	Content string
}

// TurnsFromMessages converts stored messages into assembler turns.
func TurnsFromMessages(messages []chat.Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, Turn{Role: msg.Role, Content: msg.Content})
	}
	return turns
}

// AssembleHistory builds the role-tagged model context from a transcript,
// keeping chronological order. History is clamped to the last limit turns: a
// deliberate bound on context growth, since transcripts have no length cap.
// Assembly is deterministic; identical inputs yield identical output.
func AssembleHistory(transcript []Turn, limit int) []*schema.Message {
	if len(transcript) == 0 {
		return nil
	}

	start := 0
	if limit > 0 && len(transcript) > limit {
		start = len(transcript) - limit
	}

	history := make([]*schema.Message, 0, len(transcript)-start)
	for _, turn := range transcript[start:] {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return history
}
