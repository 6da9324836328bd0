package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/aurachat/aura/backend/internal/config"
)

// ErrGenerationUnavailable marks a failed or unreachable generation backend.
// It surfaces as a turn-level failure; the user's message is already
// persisted by the time generation runs.
var ErrGenerationUnavailable = errors.New("generation backend unavailable")

const systemPrompt = "You are AURA, an emotion-aware movie companion. " +
	"You listen closely, respond with warmth, and keep replies short and conversational. " +
	"When the user just wants to talk, talk; never force a movie recommendation."

// Service wraps the generation model behind a compiled chat chain. The call
// may block for an unbounded duration; callers must not assume it returns
// quickly, and there is no internal retry.
type Service struct {
	chain        compose.Runnable[map[string]any, *schema.Message]
	historyLimit int
}

// NewService compiles the prompt-template + chat-model chain.
func NewService(ctx context.Context, cfg config.AIConfig, historyLimit int) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	if historyLimit < 1 {
		historyLimit = 1
	}

	return &Service{chain: runnable, historyLimit: historyLimit}, nil
}

// Generate produces the assistant reply for the default conversational path.
// Transcript order is preserved; the new message becomes the final user turn.
func (s *Service) Generate(ctx context.Context, transcript []Turn, newMessage string) (string, error) {
	input := map[string]any{
		"system":  systemPrompt,
		"history": AssembleHistory(transcript, s.historyLimit),
		"query":   newMessage,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	if response == nil {
		return "", fmt.Errorf("%w: empty model response", ErrGenerationUnavailable)
	}

	reply := strings.TrimSpace(response.Content)
	log.Printf("[ai] generated reply, length=%d", len(reply))
	return reply, nil
}
