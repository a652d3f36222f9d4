package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/constants"
	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/models/dtos"
	"seda-ops/ledgersync/internal/models/entities"
	"seda-ops/ledgersync/internal/providers"
)

// Stores the orchestrator writes through. Production wires the sqlx
// repositories; tests use func-field mocks.
type PaymentStore interface {
	Upsert(ctx context.Context, p *entities.Payment) error
	InvoiceExists(ctx context.Context, invoiceBubbleID string) (bool, error)
}

type ProblemStore interface {
	Append(ctx context.Context, bubbleID, reason string) error
}

type SyncListStore interface {
	GetIDs(ctx context.Context) ([]string, error)
}

// PaymentSyncService copies the operator-selected payment records from the
// Bubble data API into Postgres. Per-id failures land on the problem list
// and never abort the batch.
type PaymentSyncService struct {
	source      providers.RecordSource
	payments    PaymentStore
	problems    ProblemStore
	list        SyncListStore
	cache       common.CacheInterface
	tracker     *common.ProgressTracker
	metrics     *metrics.MetricsRegistry
	concurrency int
}

func NewPaymentSyncService(
	source providers.RecordSource,
	payments PaymentStore,
	problems ProblemStore,
	list SyncListStore,
	cache common.CacheInterface,
	tracker *common.ProgressTracker,
	metricsReg *metrics.MetricsRegistry,
	concurrency int,
) *PaymentSyncService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PaymentSyncService{
		source:      source,
		payments:    payments,
		problems:    problems,
		list:        list,
		cache:       cache,
		tracker:     tracker,
		metrics:     metricsReg,
		concurrency: concurrency,
	}
}

// Run executes one sync pass over the saved id list. Only setup failures
// (list unreadable) return an error; everything per-item is absorbed into
// the summary and the problem list.
func (s *PaymentSyncService) Run(ctx context.Context, sessionID string) (*dtos.SyncSummary, error) {
	start := time.Now()
	log := logging.WithSession(sessionID, constants.JobPaymentSync)

	ids, err := s.list.GetIDs(ctx)
	if err != nil {
		s.tracker.Fail(sessionID, "could not read sync id list")
		return nil, fmt.Errorf("read sync id list: %w", err)
	}

	s.tracker.Create(sessionID, constants.JobPaymentSync, len(ids))
	log.Infow("Payment sync starting", "ids", len(ids))

	var (
		mu      sync.Mutex
		summary dtos.SyncSummary
		seen    = make(map[string]bool, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range ids {
		if seen[id] {
			// duplicate in the pasted list
			summary.Skipped++
			s.tracker.Increment(sessionID, 1, 0)
			continue
		}
		seen[id] = true

		id := id
		g.Go(func() error {
			outcome, reason := s.processOne(gctx, id)

			mu.Lock()
			switch outcome {
			case outcomeUpdated:
				summary.Updated++
			case outcomeSkipped:
				summary.Skipped++
			case outcomeErrored:
				summary.Errored++
				summary.Errors = append(summary.Errors, dtos.RecordError{BubbleID: id, Reason: reason})
			}
			mu.Unlock()

			errs := 0
			if outcome == outcomeErrored {
				errs = 1
			}
			// exactly one increment per processed id, whatever happened
			s.tracker.Increment(sessionID, 1, errs)
			if s.metrics != nil {
				s.metrics.RecordsSyncedTotal.WithLabelValues(constants.ObjectTypePayment, string(outcome)).Inc()
			}
			return nil
		})
	}

	_ = g.Wait()
	s.tracker.Complete(sessionID)

	if s.metrics != nil {
		s.metrics.SyncJobDuration.WithLabelValues(constants.JobPaymentSync).Observe(time.Since(start).Seconds())
	}

	log.Infow("Payment sync completed",
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errored", summary.Errored,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &summary, nil
}

type syncOutcome string

const (
	outcomeUpdated syncOutcome = "updated"
	outcomeSkipped syncOutcome = "skipped"
	outcomeErrored syncOutcome = "errored"
)

func (s *PaymentSyncService) processOne(ctx context.Context, id string) (syncOutcome, string) {
	payload, err := s.source.FetchRecord(ctx, constants.ObjectTypePayment, id)
	if err != nil {
		s.recordProblem(ctx, id, fmt.Sprintf("fetch failed: %v", err))
		return outcomeErrored, err.Error()
	}

	if len(payload) == 0 {
		// deleted upstream, nothing to copy
		return outcomeSkipped, ""
	}

	payment, err := mapPayment(id, payload)
	if err != nil {
		s.recordProblem(ctx, id, err.Error())
		return outcomeErrored, err.Error()
	}

	s.checkInvoiceRef(ctx, payment)

	if err := s.payments.Upsert(ctx, payment); err != nil {
		s.recordProblem(ctx, id, fmt.Sprintf("upsert failed: %v", err))
		return outcomeErrored, err.Error()
	}

	return outcomeUpdated, ""
}

func (s *PaymentSyncService) recordProblem(ctx context.Context, id, reason string) {
	if err := s.problems.Append(ctx, id, reason); err != nil {
		logging.Error("Failed to record sync problem", "bubble_id", id, "error", err.Error())
	}
	if s.metrics != nil {
		s.metrics.SyncProblemsTotal.Inc()
	}
}

// checkInvoiceRef validates the soft invoice reference. Missing invoices
// are logged, never fatal: there is no FK behind bubble ids.
func (s *PaymentSyncService) checkInvoiceRef(ctx context.Context, p *entities.Payment) {
	if p.InvoiceBubbleID == "" || s.cache == nil {
		return
	}

	key := "invoice_exists:" + p.InvoiceBubbleID
	val, err := s.cache.GetOrSet(key, 5*time.Minute, func() (any, error) {
		return s.payments.InvoiceExists(ctx, p.InvoiceBubbleID)
	})
	if err != nil {
		return
	}

	if exists, ok := val.(bool); ok && !exists {
		logging.Warn("Payment references unknown invoice",
			"payment_bubble_id", p.BubbleID,
			"invoice_bubble_id", p.InvoiceBubbleID,
		)
	}
}

// mapPayment maps a Bubble payment payload onto the local row shape.
// Amount is the only hard requirement; everything else degrades to zero
// values the backfill and recalculation passes know how to skip.
func mapPayment(id string, payload map[string]interface{}) (*entities.Payment, error) {
	amount, ok := getFloat(payload, "amount", "Amount")
	if !ok {
		return nil, fmt.Errorf("missing required field amount for %s", id)
	}

	p := &entities.Payment{
		BubbleID:        id,
		Amount:          amount,
		Bank:            getString(payload, "bank", "issuer_bank", "Bank"),
		EPPType:         getString(payload, "epp_type", "EPP Type"),
		EPPMonth:        getInt(payload, "epp_month", "EPP Month"),
		EPPCost:         floatOrZero(payload, "epp_cost", "EPP Cost"),
		InvoiceBubbleID: getString(payload, "invoice", "invoice_id", "Invoice"),
		AgentBubbleID:   getString(payload, "agent", "agent_id", "Agent"),
	}

	if raw := getString(payload, "paid_date", "Paid Date"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			p.PaidAt = &ts
		}
	}

	return p, nil
}
