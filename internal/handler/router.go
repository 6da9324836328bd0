package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aurachat/aura/backend/internal/auth"
	authHandler "github.com/aurachat/aura/backend/internal/handler/auth"
	chatHandler "github.com/aurachat/aura/backend/internal/handler/chat"
	middlewarePkg "github.com/aurachat/aura/backend/internal/middleware"
	chatService "github.com/aurachat/aura/backend/internal/service/chat"
	"github.com/aurachat/aura/backend/internal/store"
	"github.com/aurachat/aura/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(st *store.Store, manager *auth.Manager, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public account routes.
	authHandler.New(st, manager).RegisterRoutes(r)

	// Everything under /api except the health check requires a token.
	r.Route("/api", func(api chi.Router) {
		api.Group(func(authed chi.Router) {
			authed.Use(middlewarePkg.Authenticate(manager))
			chatHandler.New(chatSvc).RegisterRoutes(authed)
		})
	})

	return r
}
