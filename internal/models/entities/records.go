package entities

// Synced master records. All joined on bubble_id, never on the serial id.

type Customer struct {
	ID       int64  `db:"id"`
	BubbleID string `db:"bubble_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
}

type Agent struct {
	ID       int64  `db:"id"`
	BubbleID string `db:"bubble_id"`
	Name     string `db:"name"`
	Branch   string `db:"branch"`
}

type SEDARegistration struct {
	ID               int64  `db:"id"`
	BubbleID         string `db:"bubble_id"`
	CustomerBubbleID string `db:"customer_bubble_id"`
	Program          string `db:"program"`
	Status           string `db:"status"`
}

// Invoice carries the source-owned invoice fields. percent_paid and
// payment_status are derived locally by the recalculation pass and are
// never written by the migration.
type Invoice struct {
	ID               int64   `db:"id"`
	BubbleID         string  `db:"bubble_id"`
	InvoiceNo        string  `db:"invoice_no"`
	TotalAmount      float64 `db:"total_amount"`
	CustomerBubbleID string  `db:"customer_bubble_id"`
}

type InvoiceItem struct {
	ID              int64   `db:"id"`
	BubbleID        string  `db:"bubble_id"`
	InvoiceBubbleID string  `db:"invoice_bubble_id"`
	Description     string  `db:"description"`
	Amount          float64 `db:"amount"`
}
