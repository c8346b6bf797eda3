// Package costing resuelve el costo histórico de productos a la fecha de una
// venta y calcula la utilidad por línea y agregada a partir de él.
package costing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// CostAt busca, entre snapshots ya ordenados descendente por fecha (y por
// UpdatedAt dentro del mismo día), el costo promedio vigente en la fecha
// objetivo: el primer snapshot con fecha <= date gana (salida temprana).
// Las compras pueden ser esparcidas, así que no se exige fecha exacta.
//
// Si ningún snapshot precede la fecha, retorna fallback (el costo promedio
// actual del producto) y fallbackUsed=true. Es una aproximación deliberada:
// puede atribuir mal la utilidad de productos comprados solo después de la
// venta evaluada. Ver DESIGN.md antes de cambiarla, porque altera cifras de
// utilidad ya reportadas.
func CostAt(sorted []*entity.DailyStockSnapshot, date time.Time, fallback decimal.Decimal) (decimal.Decimal, bool) {
	for _, s := range sorted {
		if !s.Date.After(date) {
			return s.AvgCost, false
		}
	}
	return fallback, true
}

// CostHistory indexa snapshots por producto, preordenados una sola vez
// (fecha desc, UpdatedAt desc como desempate del mismo día), para resolver
// costos sobre muchas facturas sin reordenar por línea.
type CostHistory struct {
	byProduct    map[string][]*entity.DailyStockSnapshot
	currentCosts map[string]decimal.Decimal
}

// NewCostHistory construye el índice. currentCosts es el costo promedio
// actual por producto, usado como fallback cuando no hay snapshot que
// preceda la fecha consultada.
func NewCostHistory(snapshots []*entity.DailyStockSnapshot, currentCosts map[string]decimal.Decimal) *CostHistory {
	byProduct := make(map[string][]*entity.DailyStockSnapshot)
	for _, s := range snapshots {
		byProduct[s.ProductID] = append(byProduct[s.ProductID], s)
	}
	for _, list := range byProduct {
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].Date.Equal(list[j].Date) {
				return list[i].Date.After(list[j].Date)
			}
			// Mismo día: gana la escritura más reciente
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		})
	}
	return &CostHistory{byProduct: byProduct, currentCosts: currentCosts}
}

// CostAt resuelve el costo del producto vigente en la fecha dada.
// fallbackUsed indica que se usó el costo promedio actual por falta de
// snapshot histórico.
func (h *CostHistory) CostAt(productID string, date time.Time) (cost decimal.Decimal, fallbackUsed bool) {
	return CostAt(h.byProduct[productID], date, h.currentCosts[productID])
}
