package gorm

import "time"

type Invoice struct {
	ID               int64   `gorm:"primaryKey"`
	BubbleID         string  `gorm:"column:bubble_id;uniqueIndex"`
	InvoiceNo        string  `gorm:"column:invoice_no"`
	TotalAmount      float64 `gorm:"column:total_amount"`
	PercentPaid      float64 `gorm:"column:percent_paid"`
	PaymentStatus    string  `gorm:"column:payment_status"`
	CustomerBubbleID string  `gorm:"column:customer_bubble_id"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Invoice) TableName() string {
	return "invoice"
}

// Payment completion states derived by the recalculation pass
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)
