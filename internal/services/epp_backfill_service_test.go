package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	models "seda-ops/ledgersync/internal/models/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Payment{}, &models.Invoice{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestEPPBackfill_CostFormula(t *testing.T) {
	db := setupTestDB(t)

	// Maybank 12-month tenure carries a 5.00% rate
	db.Create(&models.Payment{
		BubbleID: "pay-1",
		Amount:   1000,
		Bank:     "Maybank",
		EPPType:  EPPTypePlan,
		EPPMonth: 12,
	})

	svc := NewEPPBackfillService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Updated != 1 {
		t.Fatalf("Expected 1 updated, got %d", summary.Updated)
	}

	var rec models.Payment
	if err := db.Where("bubble_id = ?", "pay-1").First(&rec).Error; err != nil {
		t.Fatalf("Payment not found: %v", err)
	}

	if rec.EPPCost != 50.00 {
		t.Errorf("Expected cost 50.00 for amount 1000 at 5%%, got %v", rec.EPPCost)
	}
}

func TestEPPBackfill_ManyRowsUpdatedInOnePass(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Payment{BubbleID: "pay-1", Amount: 1000, Bank: "Maybank", EPPType: EPPTypePlan, EPPMonth: 6})
	db.Create(&models.Payment{BubbleID: "pay-2", Amount: 2000, Bank: "Public Bank", EPPType: EPPTypePlan, EPPMonth: 12})
	db.Create(&models.Payment{BubbleID: "pay-3", Amount: 500, Bank: "CIMB", EPPType: EPPTypePlan, EPPMonth: 6})

	svc := NewEPPBackfillService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Updated != 3 {
		t.Fatalf("Expected all 3 rows costed, got updated=%d errors=%d", summary.Updated, summary.Errors)
	}

	want := map[string]float64{
		"pay-1": 28.00,  // 1000 at 2.80%
		"pay-2": 110.00, // 2000 at 5.50%
		"pay-3": 16.00,  // 500 at 3.20%
	}
	for id, cost := range want {
		var rec models.Payment
		db.Where("bubble_id = ?", id).First(&rec)
		if rec.EPPCost != cost {
			t.Errorf("Expected cost %.2f for %s, got %v", cost, id, rec.EPPCost)
		}
	}
}

func TestEPPBackfill_ExistingCostExcluded(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Payment{
		BubbleID: "pay-1",
		Amount:   1000,
		Bank:     "Maybank",
		EPPType:  EPPTypePlan,
		EPPMonth: 12,
		EPPCost:  42.00, // already costed, must never be touched again
	})

	svc := NewEPPBackfillService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Updated != 0 || summary.Skipped != 0 {
		t.Errorf("Expected no-op run, got updated=%d skipped=%d", summary.Updated, summary.Skipped)
	}

	var rec models.Payment
	db.Where("bubble_id = ?", "pay-1").First(&rec)
	if rec.EPPCost != 42.00 {
		t.Errorf("Existing cost was mutated: got %v", rec.EPPCost)
	}
}

func TestEPPBackfill_UnknownRateSkipped(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Payment{
		BubbleID: "pay-1",
		Amount:   500,
		Bank:     "No Such Bank",
		EPPType:  EPPTypePlan,
		EPPMonth: 12,
	})
	db.Create(&models.Payment{
		BubbleID: "pay-2",
		Amount:   500,
		Bank:     "Maybank",
		EPPType:  EPPTypePlan,
		EPPMonth: 7, // no 7-month tenure anywhere
	})

	svc := NewEPPBackfillService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", summary.Skipped)
	}
	if summary.Updated != 0 {
		t.Errorf("Expected 0 updated, got %d", summary.Updated)
	}
	if len(summary.Reasons) != 2 {
		t.Errorf("Expected 2 skip reasons, got %d", len(summary.Reasons))
	}
}

func TestEPPBackfill_MissingInputsSkipped(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Payment{
		BubbleID: "pay-1",
		Amount:   0, // no amount recorded
		Bank:     "Maybank",
		EPPType:  EPPTypePlan,
		EPPMonth: 12,
	})
	db.Create(&models.Payment{
		BubbleID: "pay-2",
		Amount:   800,
		Bank:     "", // no issuer bank
		EPPType:  EPPTypePlan,
		EPPMonth: 12,
	})

	svc := NewEPPBackfillService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Skipped != 2 {
		t.Errorf("Expected 2 skipped, got %d", summary.Skipped)
	}
	if summary.Errors != 0 {
		t.Errorf("Missing inputs are skips, not errors; got %d errors", summary.Errors)
	}
}

func TestEPPBackfill_NonEPPIgnored(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Payment{
		BubbleID: "pay-1",
		Amount:   1000,
		Bank:     "Maybank",
		EPPType:  "", // straight payment, not a plan
		EPPMonth: 0,
	})

	svc := NewEPPBackfillService(db)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Updated != 0 || summary.Skipped != 0 {
		t.Errorf("Non-EPP rows must not be selected, got updated=%d skipped=%d",
			summary.Updated, summary.Skipped)
	}
}

func TestEPPBackfill_RerunIsNoOp(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Payment{
		BubbleID: "pay-1",
		Amount:   1000,
		Bank:     "Maybank",
		EPPType:  EPPTypePlan,
		EPPMonth: 12,
	})

	svc := NewEPPBackfillService(db)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if summary.Updated != 0 {
		t.Errorf("Expected second run to update nothing, got %d", summary.Updated)
	}
}
