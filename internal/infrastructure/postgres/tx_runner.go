package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appinvoicing "github.com/tu-usuario/retail-pos/internal/application/invoicing"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Ensure TxRunner implements invoicing.SubmitTxRunner.
var _ appinvoicing.SubmitTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSubmit inicia una transacción, ejecuta fn con repos atados a la tx y
// hace Commit o Rollback. El descuento condicionado de stock y la escritura
// de la factura comparten la transacción: o entra todo, o nada.
func (r *TxRunner) RunSubmit(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	snapshotRepo repository.SnapshotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	snapshotRepo := NewSnapshotRepository(tx)

	if err := fn(invoiceRepo, snapshotRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
