package gorm

import "time"

// Payment mirrors the payment table for GORM-driven jobs (EPP backfill,
// invoice recalculation). Writes from the sync path go through sqlx.
type Payment struct {
	ID              int64      `gorm:"primaryKey"`
	BubbleID        string     `gorm:"column:bubble_id;uniqueIndex"`
	Amount          float64    `gorm:"column:amount"`
	Bank            string     `gorm:"column:bank"`
	EPPType         string     `gorm:"column:epp_type"`
	EPPMonth        int        `gorm:"column:epp_month"`
	EPPCost         float64    `gorm:"column:epp_cost"`
	InvoiceBubbleID string     `gorm:"column:invoice_bubble_id"`
	AgentBubbleID   string     `gorm:"column:agent_bubble_id"`
	PaidAt          *time.Time `gorm:"column:paid_at"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Payment) TableName() string {
	return "payment"
}
