package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/runnerr0/inkwell/internal/config"
	"github.com/runnerr0/inkwell/internal/storage"
)

// NewRouter wires the full middleware chain and the CRUD routes. The
// store handle is opened once by the caller and shared by all handlers.
func NewRouter(cfg *config.Config, store storage.Store, logger zerolog.Logger) http.Handler {
	h := NewHandler(store, logger)

	mw := MiddlewareConfig{
		Development:     cfg.Server.Development,
		MaxRequestSize:  cfg.Server.MaxRequestSize,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: time.Duration(cfg.Server.RateLimitWindowM) * time.Minute,
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(mw))
	r.Use(rateLimiter(mw))
	r.Use(bodyLimit(mw))
	r.Use(securityHeaders(mw))

	r.Post("/echo", h.Echo)

	r.Route("/event", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Get("/", h.ListEvents)
		r.Get("/{id}", h.GetEvent)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
	})

	return r
}
