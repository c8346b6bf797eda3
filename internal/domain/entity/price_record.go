package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord registra los precios de venta de un producto a partir de una fecha.
// Los registros son inmutables — un cambio de precio crea un registro nuevo,
// nunca se actualiza uno existente. "Vigente" es el de fecha efectiva más
// reciente que no supere el momento actual.
type PriceRecord struct {
	ID            string
	ProductID     string
	Wholesale     *decimal.Decimal // precio mayorista (nil = no definido)
	Retail        *decimal.Decimal // precio al detal (nil = no definido)
	EffectiveDate time.Time
	CreatedAt     time.Time
}

// ProductPrices precios vigentes de un producto (proyección del último PriceRecord).
type ProductPrices struct {
	Wholesale *decimal.Decimal
	Retail    *decimal.Decimal
}
