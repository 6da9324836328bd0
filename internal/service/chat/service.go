package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aurachat/aura/backend/internal/analysis/emotion"
	"github.com/aurachat/aura/backend/internal/analysis/intent"
	"github.com/aurachat/aura/backend/internal/config"
	"github.com/aurachat/aura/backend/internal/model/catalog"
	"github.com/aurachat/aura/backend/internal/model/chat"
	"github.com/aurachat/aura/backend/internal/service/ai"
)

var (
	// ErrEmptyMessage rejects turns with no text. The caller decides how
	// to recover; the core never fabricates input.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrConversationNotFound covers both unknown conversations and
	// conversations owned by another user.
	ErrConversationNotFound = errors.New("conversation not found")
)

// Store is the persistence surface the orchestrator needs.
type Store interface {
	Conversation(ctx context.Context, id string) (chat.Conversation, error)
	CreateConversation(ctx context.Context, userID string) (chat.Conversation, error)
	AppendMessage(ctx context.Context, msg chat.Message) (chat.Message, error)
	Transcript(ctx context.Context, conversationID string) ([]chat.Message, error)
	RecentUserUtterances(ctx context.Context, conversationID string, limit int) ([]string, error)
}

// Classifier routes a message to a response strategy.
type Classifier interface {
	Classify(ctx context.Context, message string) (intent.Result, error)
}

// Analyzer produces a dominant emotion for a batch of utterances.
type Analyzer interface {
	Analyze(ctx context.Context, utterances []string) (emotion.Result, error)
}

// Generator produces the open-ended reply for the default path.
type Generator interface {
	Generate(ctx context.Context, transcript []ai.Turn, newMessage string) (string, error)
}

// Recommender samples catalog entries for a mood bucket.
type Recommender interface {
	Select(category string, count int) []catalog.Entry
}

// TurnResult is the outcome of one handled chat turn.
type TurnResult struct {
	ConversationID string       `json:"conversationId"`
	Reply          string       `json:"reply"`
	Category       intent.Label `json:"category"`
}

// Service orchestrates a chat turn: route by intent, produce a reply, and
// persist both sides of the exchange.
type Service struct {
	store      Store
	classifier Classifier
	analyzer   Analyzer
	generator  Generator
	recommend  Recommender
	chatMoods  emotion.Mapping
	genreMoods emotion.Mapping
	cfg        config.ChatConfig
}

// NewService wires the orchestrator. generator may be nil when no generation
// backend is configured; the default path then fails with
// ErrGenerationUnavailable while the mood and movie paths keep working.
func NewService(store Store, classifier Classifier, analyzer Analyzer, generator Generator, recommend Recommender, cfg config.ChatConfig) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		analyzer:   analyzer,
		generator:  generator,
		recommend:  recommend,
		chatMoods:  emotion.ChatMoods(),
		genreMoods: emotion.GenreMoods(),
		cfg:        cfg,
	}
}

// HandleTurn processes one user message. The user's message is persisted
// before any model call so a generation failure never loses input. A blank
// conversation ID starts a fresh conversation.
func (s *Service) HandleTurn(ctx context.Context, userID, conversationID, message string) (TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return TurnResult{}, ErrEmptyMessage
	}

	conv, err := s.resolveConversation(ctx, userID, conversationID)
	if err != nil {
		return TurnResult{}, err
	}

	// Transcript before this turn; the default path feeds it to the
	// assembler with the new message as the final user turn.
	transcript, err := s.store.Transcript(ctx, conv.ID)
	if err != nil {
		return TurnResult{}, fmt.Errorf("failed to load transcript: %w", err)
	}

	if _, err := s.store.AppendMessage(ctx, chat.Message{
		ConversationID: conv.ID,
		Role:           chat.RoleUser,
		Content:        message,
	}); err != nil {
		return TurnResult{}, fmt.Errorf("failed to persist user message: %w", err)
	}

	routed, err := s.classifier.Classify(ctx, message)
	if err != nil {
		return TurnResult{}, fmt.Errorf("intent classification failed: %w", err)
	}
	log.Printf("[chat] conversation=%s intent=%s score=%.3f", conv.ID, routed.Label, routed.Score)

	var reply string
	switch routed.Label {
	case intent.Mood:
		reply, err = s.moodReply(ctx, conv.ID)
	case intent.Movie:
		reply, err = s.movieReply(ctx, conv.ID)
	default:
		reply, err = s.generatedReply(ctx, transcript, message)
	}
	if err != nil {
		return TurnResult{}, err
	}

	if _, err := s.store.AppendMessage(ctx, chat.Message{
		ConversationID: conv.ID,
		Role:           chat.RoleAssistant,
		Content:        reply,
	}); err != nil {
		return TurnResult{}, fmt.Errorf("failed to persist reply: %w", err)
	}

	return TurnResult{ConversationID: conv.ID, Reply: reply, Category: routed.Label}, nil
}

// Messages returns the full transcript of a conversation owned by userID.
func (s *Service) Messages(ctx context.Context, userID, conversationID string) ([]chat.Message, error) {
	if conversationID == "" {
		return nil, ErrConversationNotFound
	}
	if _, err := s.resolveConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	transcript, err := s.store.Transcript(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return transcript, nil
}

func (s *Service) resolveConversation(ctx context.Context, userID, conversationID string) (chat.Conversation, error) {
	if conversationID == "" {
		conv, err := s.store.CreateConversation(ctx, userID)
		if err != nil {
			return chat.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
		}
		return conv, nil
	}

	conv, err := s.store.Conversation(ctx, conversationID)
	if err != nil {
		return chat.Conversation{}, ErrConversationNotFound
	}
	if conv.UserID != userID {
		return chat.Conversation{}, ErrConversationNotFound
	}
	return conv, nil
}

// dominantEmotion analyzes the user's recent utterances, which include the
// message persisted for this turn.
func (s *Service) dominantEmotion(ctx context.Context, conversationID string) (emotion.Result, error) {
	recent, err := s.store.RecentUserUtterances(ctx, conversationID, s.cfg.EmotionHistoryLimit)
	if err != nil {
		return emotion.Result{}, fmt.Errorf("failed to load recent utterances: %w", err)
	}

	result, err := s.analyzer.Analyze(ctx, recent)
	if err != nil {
		return emotion.Result{}, fmt.Errorf("emotion analysis failed: %w", err)
	}
	return result, nil
}

func (s *Service) moodReply(ctx context.Context, conversationID string) (string, error) {
	result, err := s.dominantEmotion(ctx, conversationID)
	if err != nil {
		return "", err
	}

	mood := s.chatMoods.Map(result.Dominant)
	return fmt.Sprintf("You seem to be feeling %s. I'm here if you want to talk about it.", mood), nil
}

func (s *Service) movieReply(ctx context.Context, conversationID string) (string, error) {
	result, err := s.dominantEmotion(ctx, conversationID)
	if err != nil {
		return "", err
	}

	bucket := s.genreMoods.Map(result.Dominant)
	picks := s.recommend.Select(bucket, s.cfg.RecommendCount)
	if len(picks) == 0 {
		return fmt.Sprintf("You seem to be in a %s mood, but I couldn't find a matching movie in my catalog yet. Tell me more about how you feel?", bucket), nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Feeling %s? Here are some movies that fit the vibe:\n", bucket)
	for _, pick := range picks {
		fmt.Fprintf(&builder, "- %s (%s)\n", pick.Title, strings.Join(pick.Genres, ", "))
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}

func (s *Service) generatedReply(ctx context.Context, transcript []chat.Message, message string) (string, error) {
	if s.generator == nil {
		return "", ai.ErrGenerationUnavailable
	}
	return s.generator.Generate(ctx, ai.TurnsFromMessages(transcript), message)
}
