package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.PriceRecordRepository = (*PriceRecordRepo)(nil)

// PriceRecordRepo implementación de PriceRecordRepository sobre PostgreSQL.
// La tabla es append-only: un cambio de precio inserta, nunca actualiza.
type PriceRecordRepo struct {
	q Querier
}

// NewPriceRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRecordRepository(q Querier) *PriceRecordRepo {
	return &PriceRecordRepo{q: q}
}

// Create inserta un registro de precio.
func (r *PriceRecordRepo) Create(rec *entity.PriceRecord) error {
	query := `
		INSERT INTO price_records (id, product_id, wholesale, retail, effective_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.Wholesale, rec.Retail, rec.EffectiveDate, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create price record: %w", err)
	}
	return nil
}

// HistoryByProduct devuelve los registros de un producto, más reciente primero.
func (r *PriceRecordRepo) HistoryByProduct(productID string) ([]*entity.PriceRecord, error) {
	query := `
		SELECT id, product_id, wholesale, retail, effective_date, created_at
		FROM price_records
		WHERE product_id = $1
		ORDER BY effective_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	defer rows.Close()

	var out []*entity.PriceRecord
	for rows.Next() {
		var rec entity.PriceRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Wholesale, &rec.Retail, &rec.EffectiveDate, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// LatestForAllProducts devuelve el registro vigente por producto: el de fecha
// efectiva más reciente que no supere el momento actual (DISTINCT ON).
func (r *PriceRecordRepo) LatestForAllProducts() (map[string]entity.ProductPrices, error) {
	query := `
		SELECT DISTINCT ON (product_id) product_id, wholesale, retail
		FROM price_records
		WHERE effective_date <= now()
		ORDER BY product_id, effective_date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("latest prices: %w", err)
	}
	defer rows.Close()

	out := make(map[string]entity.ProductPrices)
	for rows.Next() {
		var productID string
		var pp entity.ProductPrices
		if err := rows.Scan(&productID, &pp.Wholesale, &pp.Retail); err != nil {
			return nil, fmt.Errorf("scan latest price: %w", err)
		}
		out[productID] = pp
	}
	return out, rows.Err()
}
