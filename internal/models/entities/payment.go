package entities

import "time"

// Payment is the local copy of a Bubble payment record. bubble_id is the
// only cross-system key; invoice/agent references are soft (no FK).
type Payment struct {
	ID              int64      `db:"id"`
	BubbleID        string     `db:"bubble_id"`
	Amount          float64    `db:"amount"`
	Bank            string     `db:"bank"`
	EPPType         string     `db:"epp_type"`
	EPPMonth        int        `db:"epp_month"`
	EPPCost         float64    `db:"epp_cost"`
	InvoiceBubbleID string     `db:"invoice_bubble_id"`
	AgentBubbleID   string     `db:"agent_bubble_id"`
	PaidAt          *time.Time `db:"paid_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}
