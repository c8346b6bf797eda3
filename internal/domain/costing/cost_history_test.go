package costing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/retail-pos/internal/domain/costing"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func snap(productID, date, avgCost string) *entity.DailyStockSnapshot {
	return &entity.DailyStockSnapshot{
		ProductID: productID,
		Date:      day(date),
		AvgCost:   dec(avgCost),
		UpdatedAt: day(date),
	}
}

// Snapshots en 2024-03-01 (costo 5) y 2024-03-15 (costo 7). Una venta del
// 2024-03-10 debe resolver al costo 5: gana el snapshot más reciente que no
// supere la fecha, sin exigir fecha exacta.
func TestCostAt_SnapshotMasRecienteQueNoSupereLaFecha(t *testing.T) {
	h := costing.NewCostHistory([]*entity.DailyStockSnapshot{
		snap("P", "2024-03-01", "5"),
		snap("P", "2024-03-15", "7"),
	}, map[string]decimal.Decimal{"P": dec("9")})

	cost, fallback := h.CostAt("P", day("2024-03-10"))

	assert.True(t, dec("5").Equal(cost))
	assert.False(t, fallback)
}

func TestCostAt_FechaExacta(t *testing.T) {
	h := costing.NewCostHistory([]*entity.DailyStockSnapshot{
		snap("P", "2024-03-01", "5"),
		snap("P", "2024-03-15", "7"),
	}, nil)

	cost, fallback := h.CostAt("P", day("2024-03-15"))

	assert.True(t, dec("7").Equal(cost), "un snapshot del mismo día aplica")
	assert.False(t, fallback)
}

// Sin snapshot que preceda la fecha, se usa el costo promedio actual como
// aproximación y se marca fallbackUsed.
func TestCostAt_FallbackAlCostoActual(t *testing.T) {
	h := costing.NewCostHistory([]*entity.DailyStockSnapshot{
		snap("P", "2024-03-01", "5"),
	}, map[string]decimal.Decimal{"P": dec("9")})

	cost, fallback := h.CostAt("P", day("2024-02-01"))

	assert.True(t, dec("9").Equal(cost), "sin historial anterior gana el costo actual")
	assert.True(t, fallback, "el fallback debe quedar marcado para el reporte")
}

func TestCostAt_ProductoSinSnapshots(t *testing.T) {
	h := costing.NewCostHistory(nil, map[string]decimal.Decimal{"P": dec("9")})

	cost, fallback := h.CostAt("P", day("2024-03-10"))

	assert.True(t, dec("9").Equal(cost))
	assert.True(t, fallback)
}

// Dos escrituras del mismo día: desempata UpdatedAt, gana la más reciente.
func TestCostAt_MismoDiaGanaUltimaEscritura(t *testing.T) {
	early := snap("P", "2024-03-01", "5")
	early.UpdatedAt = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	late := snap("P", "2024-03-01", "6")
	late.UpdatedAt = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	h := costing.NewCostHistory([]*entity.DailyStockSnapshot{early, late}, nil)

	cost, fallback := h.CostAt("P", day("2024-03-05"))

	assert.True(t, dec("6").Equal(cost), "dentro del mismo día gana la escritura más reciente")
	assert.False(t, fallback)
}

// El orden de entrada no importa: el índice preordena una sola vez.
func TestCostAt_OrdenDeEntradaIndiferente(t *testing.T) {
	h := costing.NewCostHistory([]*entity.DailyStockSnapshot{
		snap("P", "2024-03-15", "7"),
		snap("P", "2024-01-01", "3"),
		snap("P", "2024-03-01", "5"),
	}, nil)

	cost, _ := h.CostAt("P", day("2024-03-10"))

	assert.True(t, dec("5").Equal(cost))
}

func TestCostAt_ProductosIndependientes(t *testing.T) {
	h := costing.NewCostHistory([]*entity.DailyStockSnapshot{
		snap("P", "2024-03-01", "5"),
		snap("Q", "2024-03-01", "50"),
	}, nil)

	costP, _ := h.CostAt("P", day("2024-03-10"))
	costQ, _ := h.CostAt("Q", day("2024-03-10"))

	assert.True(t, dec("5").Equal(costP))
	assert.True(t, dec("50").Equal(costQ))
}
