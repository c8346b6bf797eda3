package invoicing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/invoicing"
)

func TestEffectiveAvailable_RestaReservasDelBorrador(t *testing.T) {
	lines := []entity.DraftLine{
		{ProductID: "P", Quantity: dec("4")},
	}
	available := invoicing.EffectiveAvailable("P", dec("10"), lines, invoicing.NoLineExcluded)

	assert.True(t, dec("6").Equal(available), "base 10 menos 4 reservados = 6")
}

// La línea en edición se excluye del cálculo: su propia cantidad no cuenta
// como reserva al preguntar "cuánto más puedo pedir".
func TestEffectiveAvailable_ExcluyeLineaEnEdicion(t *testing.T) {
	lines := []entity.DraftLine{
		{ProductID: "P", Quantity: dec("4")},
		{ProductID: "P", Quantity: dec("3")},
	}
	available := invoicing.EffectiveAvailable("P", dec("10"), lines, 1)

	assert.True(t, dec("6").Equal(available), "excluida la línea 1, solo reservan los 4 de la línea 0")
}

func TestEffectiveAvailable_NuncaNegativo(t *testing.T) {
	lines := []entity.DraftLine{
		{ProductID: "P", Quantity: dec("15")},
	}
	available := invoicing.EffectiveAvailable("P", dec("10"), lines, invoicing.NoLineExcluded)

	assert.True(t, available.IsZero(), "sobre-reservado debe reportar 0, nunca negativo")
}

func TestEffectiveAvailable_IgnoraOtrosProductos(t *testing.T) {
	lines := []entity.DraftLine{
		{ProductID: "Q", Quantity: dec("100")},
		{ProductID: "P", Quantity: dec("2")},
	}
	available := invoicing.EffectiveAvailable("P", dec("10"), lines, invoicing.NoLineExcluded)

	assert.True(t, dec("8").Equal(available), "las reservas de otros productos no afectan")
}

func TestEffectiveAvailable_ProductoSinSnapshot(t *testing.T) {
	stock := invoicing.StockSnapshot{}
	available := invoicing.EffectiveAvailable("P", stock.Base("P"), nil, invoicing.NoLineExcluded)

	assert.True(t, available.IsZero(), "producto sin snapshot de hoy tiene base 0")
}

func TestStockSnapshot_Base(t *testing.T) {
	stock := invoicing.StockSnapshot{"P": dec("7.5")}

	assert.True(t, dec("7.5").Equal(stock.Base("P")))
	assert.True(t, stock.Base("desconocido").IsZero())
}
