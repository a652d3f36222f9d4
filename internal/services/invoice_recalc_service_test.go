package services

import (
	"context"
	"testing"

	models "seda-ops/ledgersync/internal/models/gorm"
)

func TestInvoiceRecalc_NoPaymentsIsZeroPercent(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Invoice{
		BubbleID:    "inv-1",
		TotalAmount: 2000,
		// stale derived values left over from an earlier run
		PercentPaid:   75,
		PaymentStatus: models.InvoiceStatusPartial,
	})

	svc := NewInvoiceRecalcService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Invoices != 1 {
		t.Fatalf("Expected 1 invoice recalculated, got %d", summary.Invoices)
	}

	var inv models.Invoice
	db.Where("bubble_id = ?", "inv-1").First(&inv)

	if inv.PercentPaid != 0 {
		t.Errorf("Expected 0%% with no payments, got %v", inv.PercentPaid)
	}
	if inv.PaymentStatus != models.InvoiceStatusUnpaid {
		t.Errorf("Expected status unpaid, got %s", inv.PaymentStatus)
	}
}

func TestInvoiceRecalc_PartialAndPaid(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Invoice{BubbleID: "inv-1", TotalAmount: 1000})
	db.Create(&models.Invoice{BubbleID: "inv-2", TotalAmount: 1000})

	db.Create(&models.Payment{BubbleID: "pay-1", Amount: 250, InvoiceBubbleID: "inv-1"})
	db.Create(&models.Payment{BubbleID: "pay-2", Amount: 600, InvoiceBubbleID: "inv-2"})
	db.Create(&models.Payment{BubbleID: "pay-3", Amount: 400, InvoiceBubbleID: "inv-2"})

	svc := NewInvoiceRecalcService(db)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var inv1, inv2 models.Invoice
	db.Where("bubble_id = ?", "inv-1").First(&inv1)
	db.Where("bubble_id = ?", "inv-2").First(&inv2)

	if inv1.PercentPaid != 25 {
		t.Errorf("Expected 25%%, got %v", inv1.PercentPaid)
	}
	if inv1.PaymentStatus != models.InvoiceStatusPartial {
		t.Errorf("Expected partial, got %s", inv1.PaymentStatus)
	}

	if inv2.PercentPaid != 100 {
		t.Errorf("Expected 100%%, got %v", inv2.PercentPaid)
	}
	if inv2.PaymentStatus != models.InvoiceStatusPaid {
		t.Errorf("Expected paid, got %s", inv2.PaymentStatus)
	}
}

func TestInvoiceRecalc_RerunRecomputesFromScratch(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Invoice{BubbleID: "inv-1", TotalAmount: 1000})
	db.Create(&models.Payment{BubbleID: "pay-1", Amount: 500, InvoiceBubbleID: "inv-1"})

	svc := NewInvoiceRecalcService(db)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// payment removed upstream; the next run must not trust the old 50%
	db.Where("bubble_id = ?", "pay-1").Delete(&models.Payment{})

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	var inv models.Invoice
	db.Where("bubble_id = ?", "inv-1").First(&inv)
	if inv.PercentPaid != 0 {
		t.Errorf("Expected recomputed 0%%, got %v", inv.PercentPaid)
	}
	if inv.PaymentStatus != models.InvoiceStatusUnpaid {
		t.Errorf("Expected unpaid after payment removal, got %s", inv.PaymentStatus)
	}
}

func TestDeriveInvoiceState_ZeroTotal(t *testing.T) {
	percent, status := deriveInvoiceState(0, 0)
	if percent != 0 || status != models.InvoiceStatusUnpaid {
		t.Errorf("Zero-total invoice must derive to 0%%/unpaid, got %v/%s", percent, status)
	}
}
