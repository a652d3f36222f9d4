package jobs

import (
	"context"
	"log"
	"time"

	"seda-ops/ledgersync/internal/constants"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/services"
)

// InvoiceRecalcJob re-runs the invoice payment recalculation on a schedule
// so derived fields drift back into line even when nobody triggers the
// endpoint manually.
type InvoiceRecalcJob struct {
	recalc  *services.InvoiceRecalcService
	metrics *metrics.MetricsRegistry
}

func NewInvoiceRecalcJob(recalc *services.InvoiceRecalcService, metricsReg *metrics.MetricsRegistry) *InvoiceRecalcJob {
	return &InvoiceRecalcJob{
		recalc:  recalc,
		metrics: metricsReg,
	}
}

// Run executes a single recalculation pass
func (j *InvoiceRecalcJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[InvoiceRecalcJob] Starting recalculation at %s", start.Format(time.RFC3339))

	summary, err := j.recalc.Run(ctx)
	if err != nil {
		log.Printf("[InvoiceRecalcJob] Recalculation failed: %v", err)
		return err
	}

	if j.metrics != nil {
		j.metrics.SyncJobDuration.WithLabelValues(constants.JobInvoiceRecalc).Observe(time.Since(start).Seconds())
	}

	log.Printf("[InvoiceRecalcJob] Completed in %s: invoices=%d errors=%d",
		time.Since(start).Truncate(time.Millisecond), summary.Invoices, summary.Errors)
	return nil
}

// RunScheduled runs the job on an interval until the context is cancelled
func (j *InvoiceRecalcJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[InvoiceRecalcJob] Scheduler stopped")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[InvoiceRecalcJob] Scheduled run error: %v", err)
			}
		}
	}
}
