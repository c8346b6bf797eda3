package costing

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostResolver resuelve el costo de un producto a una fecha.
type CostResolver interface {
	CostAt(productID string, date time.Time) (cost decimal.Decimal, fallbackUsed bool)
}

// SoldLine línea vendida ya persistida, insumo del agregador de utilidad.
type SoldLine struct {
	InvoiceID     string
	InvoiceDate   time.Time
	ProductID     string
	ProductName   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	IsPrivate     bool
	PrivateAmount decimal.Decimal
}

// effectivePrice monto privado si la línea fue de precio privado, si no el unitario.
func (l *SoldLine) effectivePrice() decimal.Decimal {
	if l.IsPrivate {
		return l.PrivateAmount
	}
	return l.UnitPrice
}

// LineProfit utilidad de una línea vendida al costo histórico.
type LineProfit struct {
	InvoiceID      string
	InvoiceDate    time.Time
	ProductID      string
	ProductName    string
	Quantity       decimal.Decimal
	EffectivePrice decimal.Decimal
	UnitCost       decimal.Decimal // costo vigente a la fecha de la factura
	Profit         decimal.Decimal // cantidad × (precio efectivo − costo)
	FallbackUsed   bool            // sin snapshot histórico: se usó costo actual
}

// ProfitReport utilidad por línea y agregada de un conjunto de ventas.
type ProfitReport struct {
	Lines         []LineProfit
	TotalProfit   decimal.Decimal
	FallbackCount int // líneas cuyo costo se aproximó con el costo actual
}

// AggregateProfit calcula la utilidad por línea al costo vigente en la fecha
// de cada factura y la suma. Es distinta — y más correcta — que la cifra
// ingenua "ventas − compras del periodo", que mezcla el momento de compra y
// de venta y cuenta stock sin vender; ambas se reportan, con etiquetas
// separadas.
func AggregateProfit(lines []SoldLine, costs CostResolver) ProfitReport {
	report := ProfitReport{
		Lines:       make([]LineProfit, 0, len(lines)),
		TotalProfit: decimal.Zero,
	}
	for i := range lines {
		line := &lines[i]
		cost, fallbackUsed := costs.CostAt(line.ProductID, line.InvoiceDate)
		price := line.effectivePrice()
		profit := line.Quantity.Mul(price.Sub(cost))
		report.Lines = append(report.Lines, LineProfit{
			InvoiceID:      line.InvoiceID,
			InvoiceDate:    line.InvoiceDate,
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			EffectivePrice: price,
			UnitCost:       cost,
			Profit:         profit,
			FallbackUsed:   fallbackUsed,
		})
		report.TotalProfit = report.TotalProfit.Add(profit)
		if fallbackUsed {
			report.FallbackCount++
		}
	}
	return report
}

// NaiveProfit la cifra de referencia "total ventas − total compras" del
// periodo. Se reporta solo para comparación; no atribuye costo por ítem.
func NaiveProfit(totalSales, totalPurchases decimal.Decimal) decimal.Decimal {
	return totalSales.Sub(totalPurchases)
}
