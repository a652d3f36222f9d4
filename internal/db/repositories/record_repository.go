package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"seda-ops/ledgersync/internal/models/entities"
)

// RecordRepository upserts the non-payment records migrated from the
// Bubble collections (customers, agents, SEDA registrations, invoices
// and their line items).
type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{
		db: db,
	}
}

func (r *RecordRepository) UpsertCustomer(ctx context.Context, c *entities.Customer) error {
	const query = `
		INSERT INTO customer (bubble_id, name, email, phone)
		VALUES (:bubble_id, :name, :email, :phone)
		ON CONFLICT (bubble_id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone
	`

	_, err := r.db.NamedExecContext(ctx, query, c)
	return err
}

func (r *RecordRepository) UpsertAgent(ctx context.Context, a *entities.Agent) error {
	const query = `
		INSERT INTO agent (bubble_id, name, branch)
		VALUES (:bubble_id, :name, :branch)
		ON CONFLICT (bubble_id) DO UPDATE
		SET name = EXCLUDED.name,
		    branch = EXCLUDED.branch
	`

	_, err := r.db.NamedExecContext(ctx, query, a)
	return err
}

func (r *RecordRepository) UpsertSEDARegistration(ctx context.Context, s *entities.SEDARegistration) error {
	const query = `
		INSERT INTO seda_registration (bubble_id, customer_bubble_id, program, status)
		VALUES (:bubble_id, :customer_bubble_id, :program, :status)
		ON CONFLICT (bubble_id) DO UPDATE
		SET customer_bubble_id = EXCLUDED.customer_bubble_id,
		    program = EXCLUDED.program,
		    status = EXCLUDED.status
	`

	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

// UpsertInvoice writes the source-owned fields only; percent_paid and
// payment_status stay with the recalculation pass.
func (r *RecordRepository) UpsertInvoice(ctx context.Context, inv *entities.Invoice) error {
	const query = `
		INSERT INTO invoice (bubble_id, invoice_no, total_amount, customer_bubble_id)
		VALUES (:bubble_id, :invoice_no, :total_amount, :customer_bubble_id)
		ON CONFLICT (bubble_id) DO UPDATE
		SET invoice_no = EXCLUDED.invoice_no,
		    total_amount = EXCLUDED.total_amount,
		    customer_bubble_id = EXCLUDED.customer_bubble_id
	`

	_, err := r.db.NamedExecContext(ctx, query, inv)
	return err
}

func (r *RecordRepository) UpsertInvoiceItem(ctx context.Context, item *entities.InvoiceItem) error {
	const query = `
		INSERT INTO invoice_item (bubble_id, invoice_bubble_id, description, amount)
		VALUES (:bubble_id, :invoice_bubble_id, :description, :amount)
		ON CONFLICT (bubble_id) DO UPDATE
		SET invoice_bubble_id = EXCLUDED.invoice_bubble_id,
		    description = EXCLUDED.description,
		    amount = EXCLUDED.amount
	`

	_, err := r.db.NamedExecContext(ctx, query, item)
	return err
}
