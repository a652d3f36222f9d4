package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"seda-ops/ledgersync/internal/constants"
	"seda-ops/ledgersync/internal/models/entities"
)

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

// Upsert inserts or replaces a payment row keyed by bubble_id. Re-running
// the same batch converges to the same row state.
func (r *PaymentRepository) Upsert(ctx context.Context, p *entities.Payment) error {
	const query = `
		INSERT INTO payment (bubble_id, amount, bank, epp_type, epp_month, epp_cost,
			invoice_bubble_id, agent_bubble_id, paid_at, created_at, updated_at)
		VALUES (:bubble_id, :amount, :bank, :epp_type, :epp_month, :epp_cost,
			:invoice_bubble_id, :agent_bubble_id, :paid_at, NOW(), NOW())
		ON CONFLICT (bubble_id) DO UPDATE
		SET amount = EXCLUDED.amount,
		    bank = EXCLUDED.bank,
		    epp_type = EXCLUDED.epp_type,
		    epp_month = EXCLUDED.epp_month,
		    epp_cost = EXCLUDED.epp_cost,
		    invoice_bubble_id = EXCLUDED.invoice_bubble_id,
		    agent_bubble_id = EXCLUDED.agent_bubble_id,
		    paid_at = EXCLUDED.paid_at,
		    updated_at = NOW()
	`

	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

// InvoiceExists checks the soft invoice reference at write time; there is
// no FK backing it.
func (r *PaymentRepository) InvoiceExists(ctx context.Context, invoiceBubbleID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM invoice WHERE bubble_id = $1)`

	var exists bool
	if err := r.db.QueryRowxContext(ctx, query, invoiceBubbleID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Reset truncates the payment table. Callers must have checked the
// operator's confirm flag before getting here.
func (r *PaymentRepository) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, constants.ResetPaymentTable)
	return err
}
