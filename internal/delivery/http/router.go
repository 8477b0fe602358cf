package http

import (
	"context"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// APIPrefix is the path prefix of every versioned API route.
const APIPrefix = "/api/v1"

// NewRouter initializes the HTTP router with all application routes
func NewRouter(events *controllers.EventController, attendees *controllers.AttendeeController, health *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST "+APIPrefix+"/events", events.CreateEvent)
	mux.HandleFunc("GET "+APIPrefix+"/events", events.ListEvents)
	mux.HandleFunc("GET "+APIPrefix+"/events/{eventID}", events.GetEvent)

	// Attendees
	mux.HandleFunc("POST "+APIPrefix+"/events/{eventID}/register", attendees.RegisterAttendee)
	mux.HandleFunc("GET "+APIPrefix+"/events/{eventID}/attendees", attendees.ListAttendees)

	// Ops
	mux.HandleFunc("GET /{$}", health.Root)
	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// HandlerConfig tunes the middleware chain built by NewHandler.
type HandlerConfig struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// NewHandler wraps the router with the middleware chain, outermost first:
// panic recovery, request ID, request logging, metrics, rate limiting, then CORS.
// ctx bounds background work started by the chain.
func NewHandler(ctx context.Context, logger *slog.Logger, cfg HandlerConfig, router http.Handler) http.Handler {
	h := middleware.CORS(cfg.AllowedOrigins, router)
	h = middleware.RateLimit(ctx, cfg.RateLimitPerMinute, h)
	h = metrics.HTTPMiddleware(h)
	h = middleware.LoggingMiddleware(logger, h)
	h = middleware.RequestID(h)
	return middleware.Recovery(logger, h)
}
