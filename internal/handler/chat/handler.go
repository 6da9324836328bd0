package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurachat/aura/backend/internal/middleware"
	"github.com/aurachat/aura/backend/internal/service/ai"
	chatService "github.com/aurachat/aura/backend/internal/service/chat"
	"github.com/aurachat/aura/backend/pkg/utils"
)

// Handler exposes the chat turn and transcript endpoints.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates a chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes registers the chat routes. All of them require an
// authenticated user in the request context.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleTurn)
	r.Get("/conversations/{conversationID}/messages", h.handleMessages)
}

// handleTurn runs one chat turn for the authenticated user.
func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload struct {
		ConversationID string `json:"conversationId"`
		Message        string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.HandleTurn(r.Context(), userID, payload.ConversationID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, chatService.ErrConversationNotFound):
			utils.RespondError(w, http.StatusNotFound, "conversation not found")
		case errors.Is(err, ai.ErrGenerationUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, "generation backend unavailable")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to handle message")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// handleMessages returns the transcript of one of the user's conversations.
func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conversationID := chi.URLParam(r, "conversationID")
	messages, err := h.chatSvc.Messages(r.Context(), userID, conversationID)
	if err != nil {
		if errors.Is(err, chatService.ErrConversationNotFound) {
			utils.RespondError(w, http.StatusNotFound, "conversation not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
