package invoicing

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// SubmitTxRunner ejecuta el envío de un borrador dentro de una transacción de
// BD, pasando repositorios atados a esa tx. La guarda autoritativa de stock
// (descuento condicionado del snapshot de hoy) corre dentro de la misma
// transacción que la escritura de la factura: si falla, todo se revierte.
type SubmitTxRunner interface {
	RunSubmit(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		snapshotRepo repository.SnapshotRepository,
	) error) error
}
