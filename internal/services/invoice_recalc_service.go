package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"seda-ops/ledgersync/internal/logging"
	"seda-ops/ledgersync/internal/models/dtos"
	models "seda-ops/ledgersync/internal/models/gorm"
)

// InvoiceRecalcService re-derives each invoice's percent-paid and payment
// status from the current payment rows. It never trusts a previously
// stored percent, so it is safe to run any number of times.
type InvoiceRecalcService struct {
	db *gorm.DB
}

func NewInvoiceRecalcService(db *gorm.DB) *InvoiceRecalcService {
	return &InvoiceRecalcService{db: db}
}

func (s *InvoiceRecalcService) Run(ctx context.Context) (*dtos.RecalcSummary, error) {
	// drained up front; the per-invoice sums and updates below must not
	// run while a result cursor is still open on the same handle
	var invoices []models.Invoice
	if err := s.db.WithContext(ctx).Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("invoice recalc query: %w", err)
	}

	summary := &dtos.RecalcSummary{}

	for i := range invoices {
		inv := invoices[i]

		var paid float64
		err := s.db.WithContext(ctx).
			Model(&models.Payment{}).
			Where("invoice_bubble_id = ?", inv.BubbleID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error
		if err != nil {
			logging.Error("Invoice payment sum failed", "invoice_bubble_id", inv.BubbleID, "error", err.Error())
			summary.Errors++
			continue
		}

		percent, status := deriveInvoiceState(paid, inv.TotalAmount)

		err = s.db.WithContext(ctx).
			Model(&models.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"percent_paid":   percent,
				"payment_status": status,
			}).Error
		if err != nil {
			logging.Error("Invoice state update failed", "invoice_bubble_id", inv.BubbleID, "error", err.Error())
			summary.Errors++
			continue
		}
		summary.Invoices++
	}

	return summary, nil
}

// deriveInvoiceState computes the payment-completion state from scratch.
// An invoice with no payments is 0% paid, not an error.
func deriveInvoiceState(paid, total float64) (float64, string) {
	if total <= 0 {
		if paid > 0 {
			return 0, models.InvoiceStatusPartial
		}
		return 0, models.InvoiceStatusUnpaid
	}

	percent := round2(paid / total * 100)

	switch {
	case paid >= total:
		return percent, models.InvoiceStatusPaid
	case paid > 0:
		return percent, models.InvoiceStatusPartial
	default:
		return 0, models.InvoiceStatusUnpaid
	}
}
