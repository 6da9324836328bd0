package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aurachat/aura/backend/internal/auth"
	"github.com/aurachat/aura/backend/internal/store"
	"github.com/aurachat/aura/backend/pkg/utils"
)

// Handler exposes registration and login.
type Handler struct {
	store   *store.Store
	manager *auth.Manager
}

// New creates an auth handler.
func New(st *store.Store, manager *auth.Manager) *Handler {
	return &Handler{store: st, manager: manager}
}

// RegisterRoutes registers the public auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	u, err := h.store.CreateUser(r.Context(), payload.Username, payload.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			utils.RespondError(w, http.StatusConflict, "email already registered")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), strings.TrimSpace(payload.Email))
	if err != nil {
		// Unknown email and wrong password are indistinguishable to
		// the caller.
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !auth.CheckPassword(u.PasswordHash, payload.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.manager.Issue(u.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}
