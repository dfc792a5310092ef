package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soltec-andina/facturacion-api/internal/application/ingestion"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

var _ ingestion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCommit inicia una transacción con los repos del commit de borrador
// (alta de factura + marca COMMITTED) y hace Commit o Rollback.
func (r *TxRunner) RunCommit(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	draftRepo repository.DraftRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	draftRepo := NewDraftRepository(tx)

	if err := fn(invoiceRepo, draftRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
