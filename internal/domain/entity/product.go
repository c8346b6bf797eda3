package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Cost es el costo promedio vigente; los costos históricos viven en DailyStockSnapshot.
type Product struct {
	ID            string
	SKU           string // código único
	Barcode       string
	Name          string
	Category      string
	ShelfLocation string          // ubicación en estantería
	Cost          decimal.Decimal // costo promedio actual (inicia en 0)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
