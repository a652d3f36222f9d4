package jobs

import (
	"context"
	"os"
	"strconv"
	"time"

	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/services"
)

type JobsContainer struct {
	InvoiceRecalc *InvoiceRecalcJob
}

// InitializeJobs starts the background jobs. RECALC_INTERVAL_MIN=0
// disables the scheduled recalculation.
func InitializeJobs(
	ctx context.Context,
	recalcSvc *services.InvoiceRecalcService,
	metricsReg *metrics.MetricsRegistry,
) *JobsContainer {
	recalcJob := NewInvoiceRecalcJob(recalcSvc, metricsReg)

	intervalMin := 60
	if raw := os.Getenv("RECALC_INTERVAL_MIN"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			intervalMin = v
		}
	}

	if intervalMin > 0 {
		go recalcJob.RunScheduled(ctx, time.Duration(intervalMin)*time.Minute)
		logging.Info("Scheduled invoice recalculation started", "interval_min", intervalMin)
	} else {
		logging.Info("Scheduled invoice recalculation disabled")
	}

	return &JobsContainer{
		InvoiceRecalc: recalcJob,
	}
}
