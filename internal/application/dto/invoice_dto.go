package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemResponse línea de una factura persistida.
type InvoiceItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PriceType     string          `json:"price_type"`
	IsPrivate     bool            `json:"is_private"`
	PrivateAmount decimal.Decimal `json:"private_amount"`
	Total         decimal.Decimal `json:"total"`
}

// InvoiceResponse factura persistida con su detalle.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	Type        string                `json:"type"`
	CustomerID  string                `json:"customer_id,omitempty"`
	SupplierID  string                `json:"supplier_id,omitempty"`
	Date        time.Time             `json:"date"`
	DueDate     *time.Time            `json:"due_date,omitempty"`
	Total       decimal.Decimal       `json:"total"`
	HasPayments bool                  `json:"has_payments"`
	PaidAmount  decimal.Decimal       `json:"paid_amount"`
	Items       []InvoiceItemResponse `json:"items"`
}

// RegisterPaymentRequest body para POST /api/invoices/:id/payments.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
