package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/invoicing"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ptr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testPrices() invoicing.PriceSnapshot {
	return invoicing.PriceSnapshot{
		"p-azucar": {Retail: ptr("20"), Wholesale: ptr("15")},
		"p-cafe":   {Retail: ptr("35")}, // sin precio mayorista
	}
}

func TestResolvePrice_VentaRetail(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeSell, "p-azucar",
		entity.PriceTypeRetail, false, decimal.Zero, decimal.Zero, dec("3"))

	assert.True(t, dec("20").Equal(r.UnitPrice), "el precio unitario debe salir del registro vigente")
	assert.True(t, dec("60").Equal(r.TotalPrice), "total = precio × cantidad")
	assert.False(t, r.PriceMissing)
}

func TestResolvePrice_VentaWholesale(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeSell, "p-azucar",
		entity.PriceTypeWholesale, false, decimal.Zero, decimal.Zero, dec("2"))

	assert.True(t, dec("15").Equal(r.UnitPrice))
	assert.True(t, dec("30").Equal(r.TotalPrice))
}

// Cambiar de retail a wholesale y volver debe producir exactamente el precio
// original: la resolución es una función pura del snapshot, sin estado.
func TestResolvePrice_AlternarTipoEsReversible(t *testing.T) {
	prices := testPrices()
	qty := dec("4")

	r1 := invoicing.ResolvePrice(prices, entity.InvoiceTypeSell, "p-azucar", entity.PriceTypeRetail, false, decimal.Zero, decimal.Zero, qty)
	r2 := invoicing.ResolvePrice(prices, entity.InvoiceTypeSell, "p-azucar", entity.PriceTypeWholesale, false, decimal.Zero, decimal.Zero, qty)
	r3 := invoicing.ResolvePrice(prices, entity.InvoiceTypeSell, "p-azucar", entity.PriceTypeRetail, false, decimal.Zero, decimal.Zero, qty)

	assert.True(t, r1.UnitPrice.Equal(r3.UnitPrice), "volver al tipo original debe restaurar el precio")
	assert.True(t, r1.TotalPrice.Equal(r3.TotalPrice))
	assert.False(t, r1.UnitPrice.Equal(r2.UnitPrice))
}

// El tipo elegido no tiene valor definido: la línea resuelve a 0 con la
// advertencia PriceMissing. No es fatal aquí; el validador bloquea el envío.
func TestResolvePrice_TipoSinValorMarcaPriceMissing(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeSell, "p-cafe",
		entity.PriceTypeWholesale, false, decimal.Zero, decimal.Zero, dec("1"))

	assert.True(t, r.UnitPrice.IsZero())
	assert.True(t, r.TotalPrice.IsZero())
	assert.True(t, r.PriceMissing, "sin valor para el tipo elegido debe marcar PriceMissing")
}

func TestResolvePrice_ProductoSinRegistroMarcaPriceMissing(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeSell, "p-inexistente",
		entity.PriceTypeRetail, false, decimal.Zero, decimal.Zero, dec("1"))

	assert.True(t, r.PriceMissing)
}

// Precio privado: el monto acordado manda sobre el tipo de precio, incluso 0
// (el operador aún lo está digitando).
func TestResolvePrice_PrivadoMandaSobreTipo(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeSell, "p-azucar",
		entity.PriceTypeRetail, true, dec("12.50"), decimal.Zero, dec("2"))

	assert.True(t, dec("12.50").Equal(r.UnitPrice), "el monto privado reemplaza al precio de lista")
	assert.True(t, dec("25").Equal(r.TotalPrice))
	assert.False(t, r.PriceMissing, "privado nunca marca PriceMissing")
}

func TestResolvePrice_PrivadoCeroEsValido(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeSell, "p-azucar",
		entity.PriceTypeRetail, true, decimal.Zero, decimal.Zero, dec("2"))

	assert.True(t, r.UnitPrice.IsZero())
	assert.False(t, r.PriceMissing)
}

// Compras: el costo unitario es lo realmente pagado; nunca se autocompleta
// desde los registros de precio.
func TestResolvePrice_CompraNoAutocompleta(t *testing.T) {
	r := invoicing.ResolvePrice(testPrices(), entity.InvoiceTypeBuy, "p-azucar",
		entity.PriceTypeWholesale, false, decimal.Zero, dec("11"), dec("10"))

	assert.True(t, dec("11").Equal(r.UnitPrice), "compra conserva el costo digitado")
	assert.True(t, dec("110").Equal(r.TotalPrice))
	assert.False(t, r.PriceMissing)
}

// RecomputeTotal es idempotente: re-aplicarlo sobre la misma línea no cambia
// el total (protege contra entrega duplicada de eventos de la UI).
func TestRecomputeTotal_Idempotente(t *testing.T) {
	line := entity.DraftLine{
		ProductID: "p-azucar",
		Quantity:  dec("3"),
		UnitPrice: dec("20"),
	}
	invoicing.RecomputeTotal(&line)
	first := line.TotalPrice
	invoicing.RecomputeTotal(&line)
	invoicing.RecomputeTotal(&line)

	assert.True(t, first.Equal(line.TotalPrice), "recomputar N veces produce el mismo total")
	assert.True(t, dec("60").Equal(line.TotalPrice))
}

func TestRecomputeTotal_UsaPrecioPrivado(t *testing.T) {
	line := entity.DraftLine{
		ProductID:     "p-azucar",
		Quantity:      dec("2"),
		UnitPrice:     dec("20"),
		IsPrivate:     true,
		PrivateAmount: dec("5"),
	}
	invoicing.RecomputeTotal(&line)

	assert.True(t, dec("10").Equal(line.TotalPrice), "con privado activo el total usa el monto privado")
}
