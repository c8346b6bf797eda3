// Package reporting contiene los casos de uso de reportes de negocio.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/costing"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ProfitReportUseCase genera el reporte de utilidad de un periodo.
//
// Calcula dos cifras y las etiqueta por separado: la utilidad por ítem al
// costo vigente en la fecha de cada venta (la correcta) y la cifra ingenua
// "ventas − compras" del periodo (solo referencia: mezcla el momento de
// compras y ventas y cuenta stock sin vender).
type ProfitReportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	snapshotRepo repository.SnapshotRepository
	productRepo  repository.ProductRepository
}

// NewProfitReportUseCase construye el caso de uso.
func NewProfitReportUseCase(
	invoiceRepo repository.InvoiceRepository,
	snapshotRepo repository.SnapshotRepository,
	productRepo repository.ProductRepository,
) *ProfitReportUseCase {
	return &ProfitReportUseCase{
		invoiceRepo:  invoiceRepo,
		snapshotRepo: snapshotRepo,
		productRepo:  productRepo,
	}
}

// GetReport arma el reporte del rango [from, to].
//
// Cuatro lecturas en paralelo: líneas vendidas del rango, historial de
// snapshots hasta `to`, catálogo (costos actuales para el fallback) y las dos
// sumas de totales. Los snapshots se indexan y ordenan una sola vez; cada
// línea resuelve su costo con salida temprana sobre la lista preordenada.
func (uc *ProfitReportUseCase) GetReport(ctx context.Context, from, to time.Time) (*dto.ProfitReportResponse, error) {
	type itemsResult struct {
		items []*entity.InvoiceItem
		dates map[string]time.Time
		err   error
	}
	type snapshotsResult struct {
		snapshots []*entity.DailyStockSnapshot
		err       error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type totalsResult struct {
		sales     decimal.Decimal
		purchases decimal.Decimal
		err       error
	}

	itemsCh := make(chan itemsResult, 1)
	snapsCh := make(chan snapshotsResult, 1)
	productsCh := make(chan productsResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		items, dates, err := uc.invoiceRepo.ItemsByTypeAndRange(ctx, entity.InvoiceTypeSell, from, to)
		itemsCh <- itemsResult{items, dates, err}
	}()
	go func() {
		snapshots, err := uc.snapshotRepo.HistoryUpTo(ctx, to, 0)
		snapsCh <- snapshotsResult{snapshots, err}
	}()
	go func() {
		products, err := uc.productRepo.List()
		productsCh <- productsResult{products, err}
	}()
	go func() {
		sales, err := uc.invoiceRepo.SumTotalsByTypeAndRange(ctx, entity.InvoiceTypeSell, from, to)
		if err != nil {
			totalsCh <- totalsResult{err: err}
			return
		}
		purchases, err := uc.invoiceRepo.SumTotalsByTypeAndRange(ctx, entity.InvoiceTypeBuy, from, to)
		totalsCh <- totalsResult{sales, purchases, err}
	}()

	items := <-itemsCh
	snaps := <-snapsCh
	products := <-productsCh
	totals := <-totalsCh

	if items.err != nil {
		return nil, fmt.Errorf("reporte: líneas vendidas: %w", items.err)
	}
	if snaps.err != nil {
		return nil, fmt.Errorf("reporte: historial de snapshots: %w", snaps.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("reporte: catálogo: %w", products.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("reporte: totales del periodo: %w", totals.err)
	}

	currentCosts := make(map[string]decimal.Decimal, len(products.products))
	for _, p := range products.products {
		currentCosts[p.ID] = p.Cost
	}
	history := costing.NewCostHistory(snaps.snapshots, currentCosts)

	soldLines := make([]costing.SoldLine, 0, len(items.items))
	for _, it := range items.items {
		soldLines = append(soldLines, costing.SoldLine{
			InvoiceID:     it.InvoiceID,
			InvoiceDate:   items.dates[it.InvoiceID],
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			IsPrivate:     it.IsPrivate,
			PrivateAmount: it.PrivateAmount,
		})
	}
	report := costing.AggregateProfit(soldLines, history)

	resp := &dto.ProfitReportResponse{
		From:           from,
		To:             to,
		Lines:          make([]dto.LineProfitDTO, 0, len(report.Lines)),
		TotalProfit:    report.TotalProfit.Round(2),
		TotalSales:     totals.sales.Round(2),
		TotalPurchases: totals.purchases.Round(2),
		NaiveProfit:    costing.NaiveProfit(totals.sales, totals.purchases).Round(2),
		FallbackCount:  report.FallbackCount,
	}
	for _, lp := range report.Lines {
		resp.Lines = append(resp.Lines, dto.LineProfitDTO{
			InvoiceID:      lp.InvoiceID,
			InvoiceDate:    lp.InvoiceDate,
			ProductID:      lp.ProductID,
			ProductName:    lp.ProductName,
			Quantity:       lp.Quantity,
			EffectivePrice: lp.EffectivePrice,
			UnitCost:       lp.UnitCost,
			Profit:         lp.Profit.Round(2),
			FallbackUsed:   lp.FallbackUsed,
		})
	}
	return resp, nil
}
