// Package server assembles the request pipeline: security headers, CORS,
// request identity, logging, panic recovery, metrics, tracing, and the
// route table with its JSON not-found fallback.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/finbase/wallet-service/internal/boot"
	"github.com/finbase/wallet-service/internal/config"
	"github.com/finbase/wallet-service/internal/respond"
)

// New builds the service handler. Business routes are mounted under
// /api/v1 via the api collaborator; everything else here is pipeline.
func New(cfg config.Config, log *zap.Logger, deps *boot.Deps, api http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(secureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(recoverer(log))
	r.Use(metricsMiddleware)
	r.Use(func(h http.Handler) http.Handler {
		return otelhttp.NewHandler(h, "wallet-service-http")
	})
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", handleHealth)
	r.Get("/health/ready", handleReady(deps))
	r.Mount("/api/v1", api)

	r.NotFound(respond.NotFound)
	r.MethodNotAllowed(respond.MethodNotAllowed)

	return r
}
