package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"seda-ops/ledgersync/internal/api"
	"seda-ops/ledgersync/internal/db"
	"seda-ops/ledgersync/internal/jobs"
	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/middleware"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Background jobs (scheduled invoice recalculation)
	jobs.InitializeJobs(
		context.Background(),
		deps.Services.InvoiceRecalc,
		metricsReg,
	)

	RegisterAPIRoutes(r, metricsReg, deps)

	return r
}
