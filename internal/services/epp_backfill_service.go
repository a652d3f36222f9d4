package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"gorm.io/gorm"

	"seda-ops/ledgersync/internal/constants"
	"seda-ops/ledgersync/internal/models/dtos"
	models "seda-ops/ledgersync/internal/models/gorm"
)

// EPPTypePlan marks a payment charged on an installment plan
const EPPTypePlan = "EPP"

// EPPBackfillService computes the missing financing cost on EPP payments.
// Rows that already carry a nonzero cost are never re-selected, so the
// pass is safe to re-run.
type EPPBackfillService struct {
	db *gorm.DB
}

func NewEPPBackfillService(db *gorm.DB) *EPPBackfillService {
	return &EPPBackfillService{db: db}
}

// Run selects the uncosted EPP rows and persists cost = amount * rate / 100.
// Missing inputs or an unknown (bank, tenure) pair skip the row with a
// recorded reason; only a write failure counts as an error.
func (s *EPPBackfillService) Run(ctx context.Context) (*dtos.BackfillSummary, error) {
	log.Printf("[EPPBackfill] Starting backfill scan")

	// the scan is drained before any write; updates must not run while a
	// result cursor is still open on the same handle
	var recs []models.Payment
	err := s.db.WithContext(ctx).
		Where("epp_type = ?", EPPTypePlan).
		Where("epp_cost IS NULL OR epp_cost = 0").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("epp backfill query: %w", err)
	}

	summary := &dtos.BackfillSummary{}

	for i := range recs {
		rec := recs[i]

		if reason := validateEPPInputs(&rec); reason != "" {
			log.Printf("[EPPBackfill] Skipping %s: %s", rec.BubbleID, reason)
			summary.Skipped++
			summary.Reasons = append(summary.Reasons, fmt.Sprintf("%s: %s", rec.BubbleID, reason))
			continue
		}

		rate, ok := constants.EPPRate(rec.Bank, rec.EPPMonth)
		if !ok {
			reason := fmt.Sprintf("no rate for bank %q tenure %d", rec.Bank, rec.EPPMonth)
			log.Printf("[EPPBackfill] Skipping %s: %s", rec.BubbleID, reason)
			summary.Skipped++
			summary.Reasons = append(summary.Reasons, fmt.Sprintf("%s: %s", rec.BubbleID, reason))
			continue
		}

		cost := round2(rec.Amount * rate / 100)

		err := s.db.WithContext(ctx).
			Model(&models.Payment{}).
			Where("id = ?", rec.ID).
			Update("epp_cost", cost).Error
		if err != nil {
			log.Printf("[EPPBackfill] Update error for %s: %v", rec.BubbleID, err)
			summary.Errors++
			continue
		}
		summary.Updated++
	}

	log.Printf("[EPPBackfill] Done: updated=%d skipped=%d errors=%d",
		summary.Updated, summary.Skipped, summary.Errors)
	return summary, nil
}

func validateEPPInputs(rec *models.Payment) string {
	switch {
	case rec.Amount <= 0:
		return "missing amount"
	case rec.EPPMonth <= 0:
		return "missing tenure"
	case rec.Bank == "":
		return "missing issuer bank"
	}
	return ""
}

// round2 keeps money at two decimals, consistently across runs
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
