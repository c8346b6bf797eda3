package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// SnapshotRepository acceso a los snapshots diarios de stock y costo.
type SnapshotRepository interface {
	// TodayQuantities devuelve la cantidad disponible hoy por producto.
	TodayQuantities(ctx context.Context) (map[string]decimal.Decimal, error)
	// HistoryUpTo devuelve snapshots con fecha <= endDate, más reciente primero
	// (fecha desc, luego UpdatedAt desc). limit <= 0 significa sin límite.
	HistoryUpTo(ctx context.Context, endDate time.Time, limit int) ([]*entity.DailyStockSnapshot, error)
	// Upsert inserta o reemplaza el snapshot del día (gana el UpdatedAt mayor).
	Upsert(s *entity.DailyStockSnapshot) error
	// DecrementWithGuard descuenta qty del snapshot de hoy solo si hay cantidad
	// suficiente (chequeo autoritativo al confirmar una venta). Retorna
	// domain.ErrInsufficientStock si la guarda falla.
	DecrementWithGuard(productID string, day time.Time, qty decimal.Decimal) error
	// Increment devuelve qty al snapshot del día. Se usa al re-enviar una
	// factura reabierta cuyas líneas bajaron de cantidad.
	Increment(productID string, day time.Time, qty decimal.Decimal) error
}
