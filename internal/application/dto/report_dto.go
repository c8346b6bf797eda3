package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineProfitDTO utilidad de una línea vendida, al costo histórico.
type LineProfitDTO struct {
	InvoiceID      string          `json:"invoice_id"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Profit         decimal.Decimal `json:"profit"`
	FallbackUsed   bool            `json:"fallback_used,omitempty"`
}

// ProfitReportResponse reporte de utilidad de un periodo.
// TotalProfit usa costo histórico por ítem; NaiveProfit es la cifra de
// referencia "ventas − compras" del periodo, reportada aparte porque mezcla
// el momento de compras y ventas.
type ProfitReportResponse struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Lines         []LineProfitDTO `json:"lines"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	NaiveProfit   decimal.Decimal `json:"naive_profit"`
	FallbackCount int             `json:"fallback_count"`
}
