package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDraftRequest body para POST /api/drafts.
type CreateDraftRequest struct {
	Type       string     `json:"type"` // BUY | SELL
	CustomerID string     `json:"customer_id,omitempty"`
	SupplierID string     `json:"supplier_id,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// AddProductRequest body para POST /api/drafts/:id/lines.
// Barcode es opcional; si viene, el producto se resuelve por código de barras
// (flujo de escáner) y se conserva en la línea.
type AddProductRequest struct {
	ProductID string `json:"product_id,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
}

// SetQuantityRequest body para PUT /api/drafts/:id/lines/:idx/quantity.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// SetPriceTypeRequest body para PUT /api/drafts/:id/lines/:idx/price-type.
type SetPriceTypeRequest struct {
	PriceType string `json:"price_type"` // retail | wholesale
}

// SetUnitPriceRequest body para PUT /api/drafts/:id/lines/:idx/unit-price
// (compras: digitación del costo realmente pagado).
type SetUnitPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SetPrivatePriceRequest body para PUT /api/drafts/:id/lines/:idx/private-price.
type SetPrivatePriceRequest struct {
	IsPrivate bool            `json:"is_private"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
}

// DraftLineDTO línea de borrador con el disponible efectivo ya calculado
// (para que la UI muestre cuánto más puede pedir esa línea).
type DraftLineDTO struct {
	Index              int             `json:"index"`
	ProductID          string          `json:"product_id,omitempty"`
	ProductName        string          `json:"product_name,omitempty"`
	Barcode            string          `json:"barcode,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	PriceType          string          `json:"price_type"`
	IsPrivate          bool            `json:"is_private"`
	PrivateAmount      decimal.Decimal `json:"private_amount"`
	PrivateNote        string          `json:"private_note,omitempty"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	PriceMissing       bool            `json:"price_missing,omitempty"`
	EffectiveAvailable decimal.Decimal `json:"effective_available"`
}

// DraftResponse estado completo de un borrador.
type DraftResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	CustomerID  string          `json:"customer_id,omitempty"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	HasPayments bool            `json:"has_payments"`
	Lines       []DraftLineDTO  `json:"lines"`
	Total       decimal.Decimal `json:"total"`
}

// SubmitDraftResponse respuesta del envío de un borrador.
type SubmitDraftResponse struct {
	InvoiceID string          `json:"invoice_id"`
	Total     decimal.Decimal `json:"total"`
}
