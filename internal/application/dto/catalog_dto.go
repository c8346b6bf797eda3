package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string `json:"sku"`
	Barcode       string `json:"barcode,omitempty"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	ShelfLocation string `json:"shelf_location,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Solo campos descriptivos; la identidad del producto es inmutable.
type UpdateProductRequest struct {
	Barcode       string `json:"barcode,omitempty"`
	Name          string `json:"name,omitempty"`
	Category      string `json:"category,omitempty"`
	ShelfLocation string `json:"shelf_location,omitempty"`
}

// ProductResponse producto del catálogo con sus precios vigentes.
type ProductResponse struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Barcode       string           `json:"barcode,omitempty"`
	Name          string           `json:"name"`
	Category      string           `json:"category,omitempty"`
	ShelfLocation string           `json:"shelf_location,omitempty"`
	Cost          decimal.Decimal  `json:"cost"`
	Wholesale     *decimal.Decimal `json:"wholesale,omitempty"`
	Retail        *decimal.Decimal `json:"retail,omitempty"`
}

// CreatePriceRecordRequest body para POST /api/products/:id/prices.
// Un cambio de precio crea un registro nuevo, nunca modifica uno existente.
type CreatePriceRecordRequest struct {
	Wholesale     *decimal.Decimal `json:"wholesale,omitempty"`
	Retail        *decimal.Decimal `json:"retail,omitempty"`
	EffectiveDate *time.Time       `json:"effective_date,omitempty"` // nil = ahora
}

// PriceRecordResponse registro histórico de precios.
type PriceRecordResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Wholesale     *decimal.Decimal `json:"wholesale,omitempty"`
	Retail        *decimal.Decimal `json:"retail,omitempty"`
	EffectiveDate time.Time        `json:"effective_date"`
}
