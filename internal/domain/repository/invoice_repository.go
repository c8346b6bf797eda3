package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// InvoiceRepository acceso a facturas persistidas y sus líneas.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	// UpdateHeader actualiza total, vencimiento y updated_at de una factura
	// existente. El estado de pagos no se toca por esta vía.
	UpdateHeader(inv *entity.Invoice) error
	// DeleteItemsByInvoiceID borra las líneas de una factura (el re-envío de
	// una factura reabierta las reemplaza completas).
	DeleteItemsByInvoiceID(invoiceID string) error
	// ListByTypeAndRange devuelve las facturas de un tipo con fecha en [from, to].
	ListByTypeAndRange(ctx context.Context, invoiceType string, from, to time.Time) ([]*entity.Invoice, error)
	// ItemsByTypeAndRange devuelve las líneas de todas las facturas del tipo en el rango,
	// junto con la fecha de su factura (para resolución de costo histórico).
	ItemsByTypeAndRange(ctx context.Context, invoiceType string, from, to time.Time) ([]*entity.InvoiceItem, map[string]time.Time, error)
	// SumTotalsByTypeAndRange suma los totales de factura del tipo en el rango.
	SumTotalsByTypeAndRange(ctx context.Context, invoiceType string, from, to time.Time) (decimal.Decimal, error)
	// RegisterPayment registra un abono y marca la factura con pagos.
	RegisterPayment(invoiceID string, amount decimal.Decimal, when time.Time) error
}
