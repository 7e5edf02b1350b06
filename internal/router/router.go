package router

import (
	"net/http"

	"budgie-shop/internal/handler"
	"budgie-shop/internal/metrics"
	"budgie-shop/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	healthHandler *handler.HealthHandler,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /api/hello", healthHandler.Hello)
	mux.HandleFunc("GET /test", healthHandler.Test)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("POST /api/products", productHandler.Create)

	// Apply middleware in order: RequestID -> Logging -> Metrics -> Recovery -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Metrics(m)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
