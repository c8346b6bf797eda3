package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftLine es una línea de factura en edición. Es efímera: vive en memoria
// hasta que la factura se envía y se convierte en InvoiceItem.
// ProductID queda vacío hasta que se elige un producto.
type DraftLine struct {
	ProductID     string
	ProductName   string
	Barcode       string // código capturado al seleccionar (escáner o manual)
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	PriceType     string // retail | wholesale
	IsPrivate     bool
	PrivateAmount decimal.Decimal
	PrivateNote   string
	TotalPrice    decimal.Decimal // derivado = precio efectivo × cantidad
	PriceMissing  bool            // el tipo de precio elegido no tiene valor definido
}

// HasProduct indica si la línea ya tiene un producto elegido.
func (l *DraftLine) HasProduct() bool {
	return l.ProductID != ""
}

// EffectivePrice precio efectivo: monto privado si IsPrivate, si no UnitPrice.
func (l *DraftLine) EffectivePrice() decimal.Decimal {
	if l.IsPrivate {
		return l.PrivateAmount
	}
	return l.UnitPrice
}

// DraftInvoice es una factura en edición (borrador).
// Una vez HasPayments es true, no se permiten agregar ni quitar líneas.
type DraftInvoice struct {
	ID          string
	Type        string // BUY | SELL
	CustomerID  string // solo SELL
	SupplierID  string // solo BUY
	DueDate     *time.Time
	Lines       []DraftLine
	HasPayments bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Total suma los totales de línea del borrador.
func (d *DraftInvoice) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range d.Lines {
		total = total.Add(d.Lines[i].TotalPrice)
	}
	return total
}
