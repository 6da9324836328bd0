package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aurachat/aura/backend/internal/analysis/emotion"
	"github.com/aurachat/aura/backend/internal/analysis/intent"
	"github.com/aurachat/aura/backend/internal/config"
	"github.com/aurachat/aura/backend/internal/middleware"
	"github.com/aurachat/aura/backend/internal/model/catalog"
	"github.com/aurachat/aura/backend/internal/service/ai"
	chatservice "github.com/aurachat/aura/backend/internal/service/chat"
	"github.com/aurachat/aura/backend/internal/store"
)

type staticVerifier struct{ userID string }

func (v staticVerifier) Verify(string) (string, error) { return v.userID, nil }

type noneClassifier struct{}

func (noneClassifier) Classify(context.Context, string) (intent.Result, error) {
	return intent.Result{Label: intent.None, Score: 0.1}, nil
}

type joyAnalyzer struct{}

func (joyAnalyzer) Analyze(context.Context, []string) (emotion.Result, error) {
	return emotion.Result{Dominant: emotion.Joy, Confidence: 0.9}, nil
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, _ []ai.Turn, newMessage string) (string, error) {
	return "you said: " + newMessage, nil
}

type emptyRecommender struct{}

func (emptyRecommender) Select(string, int) []catalog.Entry { return []catalog.Entry{} }

func setupRouter(t *testing.T) (*chi.Mux, *store.Store, string) {
	t.Helper()

	ctx := context.Background()
	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	u, err := st.CreateUser(ctx, "ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	cfg := config.ChatConfig{IntentThreshold: 0.72, HistoryLimit: 10, EmotionHistoryLimit: 6, RecommendCount: 5}
	svc := chatservice.NewService(st, noneClassifier{}, joyAnalyzer{}, echoGenerator{}, emptyRecommender{}, cfg)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(staticVerifier{userID: u.ID}))
		New(svc).RegisterRoutes(r)
	})
	return r, st, u.ID
}

func postChat(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatTurnCreatesConversation(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postChat(t, r, map[string]string{"message": "hello there"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result chatservice.TurnResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.ConversationID == "" {
		t.Fatal("expected a conversation ID")
	}
	if result.Reply != "you said: hello there" {
		t.Fatalf("unexpected reply %q", result.Reply)
	}
}

func TestChatTurnEmptyMessage(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postChat(t, r, map[string]string{"message": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatTurnUnknownConversation(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postChat(t, r, map[string]string{"conversationId": "missing", "message": "hi"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestChatRequiresToken(t *testing.T) {
	r, _, _ := setupRouter(t)

	payload, _ := json.Marshal(map[string]string{"message": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestMessagesReturnsTranscript(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postChat(t, r, map[string]string{"message": "hello there"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var result chatservice.TurnResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/conversations/"+result.ConversationID+"/messages", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(body.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(body.Messages))
	}
	if body.Messages[0].Role != "user" || body.Messages[1].Role != "assistant" {
		t.Fatalf("unexpected roles %q, %q", body.Messages[0].Role, body.Messages[1].Role)
	}
}

func TestMessagesUnknownConversation(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/conversations/missing/messages", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
