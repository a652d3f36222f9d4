package routes

import (
	"github.com/go-chi/chi/v5"

	"seda-ops/ledgersync/internal/api"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {

	svcs := deps.Services
	repos := deps.Repo

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(repos.Keys, svcs.LinkSigner)) // global: API key or dashboard token

		// progress polling is the only endpoint dashboard tokens may hit
		v1.Get("/sync/progress", api.ProgressHandler(svcs.Tracker))

		// Operator group: everything below needs a full API key
		v1.Group(func(operator chi.Router) {
			operator.Use(middleware.RequireSyncTrigger())

			operator.Post("/sync/payment-sync", api.PaymentSyncHandler(svcs.PaymentSync, svcs.Tracker))
			operator.Post("/sync/payment-recalculate", api.PaymentRecalculateHandler(svcs.InvoiceRecalc))
			operator.Post("/sync/payment-reset", api.PaymentResetHandler(repos.Payments))
			operator.Post("/sync/payment-save-list", api.SaveSyncListHandler(repos.SyncList))
			operator.Post("/sync/payment-clear-list", api.ClearSyncListHandler(repos.SyncList))
			operator.Post("/sync/epp-backfill", api.EPPBackfillHandler(svcs.EPPBackfill))
			operator.Post("/sync/record-migration", api.RecordMigrationHandler(svcs.RecordMigrate, svcs.Tracker))

			operator.Get("/sync/payment-problems", api.ListProblemsHandler(repos.Problems))
			operator.Post("/sync/payment-problems/clear", api.ClearProblemsHandler(repos.Problems))

			operator.Post("/auth/generate-dashboard-link", api.GenerateDashboardLinkHandler(svcs.LinkSigner))
		})
	})
}
