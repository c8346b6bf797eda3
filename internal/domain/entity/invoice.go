package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura.
const (
	InvoiceTypeBuy  = "BUY"  // compra a proveedor
	InvoiceTypeSell = "SELL" // venta a cliente
)

// Tipos de precio para líneas de venta.
const (
	PriceTypeRetail    = "retail"
	PriceTypeWholesale = "wholesale"
)

// Invoice representa una factura persistida (compra o venta).
// CustomerID y SupplierID son mutuamente excluyentes según el tipo.
type Invoice struct {
	ID          string
	Type        string // BUY | SELL
	CustomerID  string // solo SELL
	SupplierID  string // solo BUY
	Date        time.Time
	DueDate     *time.Time
	Total       decimal.Decimal // suma de los totales de línea
	HasPayments bool
	PaidAmount  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceItem representa una línea persistida de una factura.
type InvoiceItem struct {
	ID            string
	InvoiceID     string
	ProductID     string
	ProductName   string // denormalizado para reportes
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	PriceType     string // retail | wholesale
	IsPrivate     bool
	PrivateAmount decimal.Decimal
	PrivateNote   string
	Total         decimal.Decimal
}

// EffectivePrice precio efectivo de la línea: el monto privado si la línea
// tiene precio privado, si no el precio unitario resuelto.
func (it *InvoiceItem) EffectivePrice() decimal.Decimal {
	if it.IsPrivate {
		return it.PrivateAmount
	}
	return it.UnitPrice
}
