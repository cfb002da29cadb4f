package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kiran3035/healthai-assistant/internal/api"
	"github.com/kiran3035/healthai-assistant/internal/api/handlers"
	"github.com/kiran3035/healthai-assistant/internal/api/middleware"
	"github.com/kiran3035/healthai-assistant/internal/engine"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// Handlers aggregates every HTTP handler the router mounts.
type Handlers struct {
	Chat   *handlers.ChatHandler
	Status *handlers.StatusHandler
}

// NewRouter builds the HTTP routing tree with the standard middleware stack.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.MaxBodyBytes(maxRequestBodyBytes))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"message": engine.WelcomeMessage})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.Chat.Chat)
		r.Post("/chat/detailed", h.Chat.ChatDetailed)
		r.Get("/status", h.Status.Status)
	})

	return r
}
