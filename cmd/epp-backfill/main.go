package main

import (
	"context"
	"fmt"
	"log"

	"seda-ops/ledgersync/internal/db"
	"seda-ops/ledgersync/internal/services"
)

// One-shot runner for the EPP cost backfill, for operators who prefer the
// shell over the sync UI. Safe to re-run.
func main() {
	orm, err := db.InitPostgresORM()
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}

	summary, err := services.NewEPPBackfillService(orm).Run(context.Background())
	if err != nil {
		log.Fatalf("backfill: %v", err)
	}

	fmt.Printf("EPP backfill done: updated=%d skipped=%d errors=%d\n",
		summary.Updated, summary.Skipped, summary.Errors)
	for _, reason := range summary.Reasons {
		fmt.Println("  skipped:", reason)
	}
}
