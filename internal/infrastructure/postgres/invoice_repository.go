package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la cabecera de la factura.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, type, customer_id, supplier_id, date, due_date, total, has_payments, paid_amount, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Type, inv.CustomerID, inv.SupplierID, inv.Date, inv.DueDate,
		inv.Total, inv.HasPayments, inv.PaidAmount, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Cliente o proveedor referenciado no existe
			return domain.ErrNotFound
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, product_name, quantity, unit_price, price_type, is_private, private_amount, private_note, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.ProductID, item.ProductName, item.Quantity,
		item.UnitPrice, item.PriceType, item.IsPrivate, item.PrivateAmount, item.PrivateNote, item.Total,
	)
	if err != nil {
		return fmt.Errorf("create invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura. Retorna (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, type, COALESCE(customer_id, ''), COALESCE(supplier_id, ''), date, due_date, total, has_payments, paid_amount, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Type, &inv.CustomerID, &inv.SupplierID, &inv.Date, &inv.DueDate,
		&inv.Total, &inv.HasPayments, &inv.PaidAmount, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// UpdateHeader actualiza total, vencimiento y updated_at de una factura
// existente. El estado de pagos no se toca por esta vía.
func (r *InvoiceRepo) UpdateHeader(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET due_date = $2, total = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, inv.ID, inv.DueDate, inv.Total, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItemsByInvoiceID borra las líneas de una factura. El re-envío de una
// factura reabierta las reemplaza completas dentro de la transacción.
func (r *InvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	query := `DELETE FROM invoice_items WHERE invoice_id = $1`
	if _, err := r.q.Exec(context.Background(), query, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

const itemColumns = `id, invoice_id, product_id, product_name, quantity, unit_price, price_type, is_private, private_amount, private_note, total`

// GetItemsByInvoiceID devuelve las líneas de una factura.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM invoice_items WHERE invoice_id = $1`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoice items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListByTypeAndRange devuelve las facturas de un tipo con fecha en [from, to].
func (r *InvoiceRepo) ListByTypeAndRange(ctx context.Context, invoiceType string, from, to time.Time) ([]*entity.Invoice, error) {
	query := `
		SELECT id, type, COALESCE(customer_id, ''), COALESCE(supplier_id, ''), date, due_date, total, has_payments, paid_amount, created_at, updated_at
		FROM invoices
		WHERE type = $1 AND date >= $2 AND date <= $3
		ORDER BY date`
	rows, err := r.q.Query(ctx, query, invoiceType, from, to)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.Type, &inv.CustomerID, &inv.SupplierID, &inv.Date, &inv.DueDate,
			&inv.Total, &inv.HasPayments, &inv.PaidAmount, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

// ItemsByTypeAndRange devuelve las líneas de todas las facturas del tipo en el
// rango, más la fecha de cada factura (para resolución de costo histórico).
func (r *InvoiceRepo) ItemsByTypeAndRange(ctx context.Context, invoiceType string, from, to time.Time) ([]*entity.InvoiceItem, map[string]time.Time, error) {
	query := `
		SELECT it.id, it.invoice_id, it.product_id, it.product_name, it.quantity, it.unit_price,
		       it.price_type, it.is_private, it.private_amount, it.private_note, it.total, i.date
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		WHERE i.type = $1 AND i.date >= $2 AND i.date <= $3
		ORDER BY i.date`
	rows, err := r.q.Query(ctx, query, invoiceType, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("items by range: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceItem
	dates := make(map[string]time.Time)
	for rows.Next() {
		var it entity.InvoiceItem
		var date time.Time
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.PriceType, &it.IsPrivate, &it.PrivateAmount, &it.PrivateNote, &it.Total, &date); err != nil {
			return nil, nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, &it)
		dates[it.InvoiceID] = date
	}
	return out, dates, rows.Err()
}

// SumTotalsByTypeAndRange suma los totales de factura del tipo en el rango.
func (r *InvoiceRepo) SumTotalsByTypeAndRange(ctx context.Context, invoiceType string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM invoices
		WHERE type = $1 AND date >= $2 AND date <= $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, invoiceType, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum totals: %w", err)
	}
	return sum, nil
}

// RegisterPayment registra un abono y marca la factura con pagos.
func (r *InvoiceRepo) RegisterPayment(invoiceID string, amount decimal.Decimal, when time.Time) error {
	query := `
		UPDATE invoices
		SET has_payments = TRUE, paid_amount = paid_amount + $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, invoiceID, amount, when)
	if err != nil {
		return fmt.Errorf("register payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("register payment: factura %s no encontrada", invoiceID)
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.PriceType, &it.IsPrivate, &it.PrivateAmount, &it.PrivateNote, &it.Total); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
