package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL.
// Un snapshot lógico por (producto, fecha); el upsert conserva la escritura
// con UpdatedAt mayor.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// TodayQuantities devuelve la cantidad disponible hoy por producto.
func (r *SnapshotRepo) TodayQuantities(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, quantity
		FROM daily_stock_snapshots
		WHERE date = CURRENT_DATE`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("today stock: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productID string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan today stock: %w", err)
		}
		out[productID] = qty
	}
	return out, rows.Err()
}

// HistoryUpTo devuelve snapshots con fecha <= endDate, más reciente primero
// (fecha desc, UpdatedAt desc). limit <= 0 significa sin límite.
func (r *SnapshotRepo) HistoryUpTo(ctx context.Context, endDate time.Time, limit int) ([]*entity.DailyStockSnapshot, error) {
	query := `
		SELECT id, product_id, date, quantity, avg_cost, created_at, updated_at
		FROM daily_stock_snapshots
		WHERE date <= $1
		ORDER BY date DESC, updated_at DESC`
	args := []any{endDate}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot history: %w", err)
	}
	defer rows.Close()

	var out []*entity.DailyStockSnapshot
	for rows.Next() {
		var s entity.DailyStockSnapshot
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Date, &s.Quantity, &s.AvgCost, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Upsert inserta o reemplaza el snapshot del día. Gana la escritura más
// reciente: el update solo aplica si el UpdatedAt entrante es mayor.
func (r *SnapshotRepo) Upsert(s *entity.DailyStockSnapshot) error {
	query := `
		INSERT INTO daily_stock_snapshots (id, product_id, date, quantity, avg_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, date)
		DO UPDATE SET quantity = EXCLUDED.quantity, avg_cost = EXCLUDED.avg_cost, updated_at = EXCLUDED.updated_at
		WHERE daily_stock_snapshots.updated_at < EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ProductID, s.Date, s.Quantity, s.AvgCost, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// DecrementWithGuard descuenta qty del snapshot del día solo si hay cantidad
// suficiente. Es el chequeo autoritativo al confirmar una venta: el WHERE con
// quantity >= $3 garantiza que el stock nunca queda negativo aunque el
// snapshot del editor estuviera viejo. Cero filas afectadas = guarda fallida.
func (r *SnapshotRepo) DecrementWithGuard(productID string, day time.Time, qty decimal.Decimal) error {
	query := `
		UPDATE daily_stock_snapshots
		SET quantity = quantity - $3, updated_at = now()
		WHERE product_id = $1 AND date = $2::date AND quantity >= $3`
	tag, err := r.q.Exec(context.Background(), query, productID, day, qty)
	if err != nil {
		return fmt.Errorf("decrement snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Increment devuelve qty al snapshot del día. Corre dentro de la misma
// transacción que el re-envío de una factura reabierta: si una línea bajó de
// cantidad, la diferencia vuelve al stock.
func (r *SnapshotRepo) Increment(productID string, day time.Time, qty decimal.Decimal) error {
	query := `
		UPDATE daily_stock_snapshots
		SET quantity = quantity + $3, updated_at = now()
		WHERE product_id = $1 AND date = $2::date`
	tag, err := r.q.Exec(context.Background(), query, productID, day, qty)
	if err != nil {
		return fmt.Errorf("increment snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment snapshot: producto %s sin snapshot del día", productID)
	}
	return nil
}
