package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seda-ops/ledgersync/internal/db"
	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Ledgersync starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM (batch jobs: backfill, recalculation)
	if _, err := db.InitPostgresORM(); err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	upSince := time.Now()

	// Initialize router with Chi
	router := routes.RegisterRoutes(upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	logging.Info("Server starting",
		"port", httpPort,
		"environment", appEnv,
	)

	log.Printf("Starting server on :%s", httpPort)
	log.Fatal(http.ListenAndServe(":"+httpPort, mux))
}
