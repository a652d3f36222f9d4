package services

import (
	"context"
	"fmt"
	"time"

	"seda-ops/ledgersync/internal/common"
	"seda-ops/ledgersync/internal/constants"
	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/metrics"
	"seda-ops/ledgersync/internal/models/dtos"
	"seda-ops/ledgersync/internal/models/entities"
	"seda-ops/ledgersync/internal/providers"
)

type RecordStore interface {
	UpsertCustomer(ctx context.Context, c *entities.Customer) error
	UpsertAgent(ctx context.Context, a *entities.Agent) error
	UpsertSEDARegistration(ctx context.Context, s *entities.SEDARegistration) error
	UpsertInvoice(ctx context.Context, inv *entities.Invoice) error
	UpsertInvoiceItem(ctx context.Context, item *entities.InvoiceItem) error
}

// RecordMigrationService pages through a whole Bubble collection and
// copies it locally. Like the payment sync, one bad record never stops
// the run; failures go to the problem list.
type RecordMigrationService struct {
	source   providers.RecordSource
	records  RecordStore
	problems ProblemStore
	tracker  *common.ProgressTracker
	metrics  *metrics.MetricsRegistry
	pageSize int
}

func NewRecordMigrationService(
	source providers.RecordSource,
	records RecordStore,
	problems ProblemStore,
	tracker *common.ProgressTracker,
	metricsReg *metrics.MetricsRegistry,
) *RecordMigrationService {
	return &RecordMigrationService{
		source:   source,
		records:  records,
		problems: problems,
		tracker:  tracker,
		metrics:  metricsReg,
		pageSize: 100,
	}
}

// SupportedObjectType reports whether a collection can be migrated
func SupportedObjectType(objectType string) bool {
	switch objectType {
	case constants.ObjectTypeCustomer, constants.ObjectTypeAgent,
		constants.ObjectTypeSEDARegistration,
		constants.ObjectTypeInvoice, constants.ObjectTypeInvoiceItem:
		return true
	}
	return false
}

func (s *RecordMigrationService) Run(ctx context.Context, sessionID, objectType string) (*dtos.SyncSummary, error) {
	start := time.Now()
	log := logging.WithSession(sessionID, constants.JobRecordMigration)

	if !SupportedObjectType(objectType) {
		s.tracker.Fail(sessionID, "unsupported object type "+objectType)
		return nil, fmt.Errorf("unsupported object type %q", objectType)
	}

	summary := &dtos.SyncSummary{}
	cursor := 0
	firstPage := true

	for {
		page, err := s.source.FetchRecords(ctx, objectType, cursor, s.pageSize)
		if err != nil {
			if firstPage {
				// nothing copied yet, treat as setup failure
				s.tracker.Fail(sessionID, err.Error())
				return nil, fmt.Errorf("fetch %s page: %w", objectType, err)
			}
			log.Errorw("Migration page fetch failed, stopping early", "cursor", cursor, "error", err.Error())
			s.tracker.Fail(sessionID, err.Error())
			return summary, nil
		}

		if firstPage {
			s.tracker.SetTotal(sessionID, page.Remaining+len(page.Results))
			firstPage = false
		}

		for _, rec := range page.Results {
			id := getString(rec, "_id", "id")
			if id == "" {
				summary.Skipped++
				s.tracker.Increment(sessionID, 1, 0)
				continue
			}

			if err := s.upsertOne(ctx, objectType, id, rec); err != nil {
				summary.Errored++
				summary.Errors = append(summary.Errors, dtos.RecordError{BubbleID: id, Reason: err.Error()})
				if perr := s.problems.Append(ctx, id, err.Error()); perr != nil {
					logging.Error("Failed to record migration problem", "bubble_id", id, "error", perr.Error())
				}
				s.tracker.Increment(sessionID, 1, 1)
				continue
			}

			summary.Updated++
			s.tracker.Increment(sessionID, 1, 0)
			if s.metrics != nil {
				s.metrics.RecordsSyncedTotal.WithLabelValues(objectType, "updated").Inc()
			}
		}

		if !page.HasMore {
			break
		}
		cursor = page.Cursor
	}

	s.tracker.Complete(sessionID)
	if s.metrics != nil {
		s.metrics.SyncJobDuration.WithLabelValues(constants.JobRecordMigration).Observe(time.Since(start).Seconds())
	}

	log.Infow("Record migration completed",
		"object_type", objectType,
		"updated", summary.Updated,
		"errored", summary.Errored,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

func (s *RecordMigrationService) upsertOne(ctx context.Context, objectType, id string, rec map[string]interface{}) error {
	switch objectType {
	case constants.ObjectTypeCustomer:
		return s.records.UpsertCustomer(ctx, &entities.Customer{
			BubbleID: id,
			Name:     getString(rec, "name", "Name"),
			Email:    getString(rec, "email", "Email"),
			Phone:    getString(rec, "phone", "Phone"),
		})
	case constants.ObjectTypeAgent:
		return s.records.UpsertAgent(ctx, &entities.Agent{
			BubbleID: id,
			Name:     getString(rec, "name", "Name"),
			Branch:   getString(rec, "branch", "Branch"),
		})
	case constants.ObjectTypeSEDARegistration:
		return s.records.UpsertSEDARegistration(ctx, &entities.SEDARegistration{
			BubbleID:         id,
			CustomerBubbleID: getString(rec, "customer", "Customer"),
			Program:          getString(rec, "program", "Program"),
			Status:           getString(rec, "status", "Status"),
		})
	case constants.ObjectTypeInvoice:
		return s.records.UpsertInvoice(ctx, &entities.Invoice{
			BubbleID:         id,
			InvoiceNo:        getString(rec, "invoice_no", "Invoice No"),
			TotalAmount:      floatOrZero(rec, "total_amount", "amount", "Total Amount"),
			CustomerBubbleID: getString(rec, "customer", "Customer"),
		})
	case constants.ObjectTypeInvoiceItem:
		return s.records.UpsertInvoiceItem(ctx, &entities.InvoiceItem{
			BubbleID:        id,
			InvoiceBubbleID: getString(rec, "invoice", "Invoice"),
			Description:     getString(rec, "description", "Description"),
			Amount:          floatOrZero(rec, "amount", "Amount"),
		})
	}
	return fmt.Errorf("unsupported object type %q", objectType)
}
