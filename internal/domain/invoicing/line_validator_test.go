package invoicing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/invoicing"
)

func newValidator() *invoicing.LineValidator {
	return invoicing.NewLineValidator(invoicing.ValidatorConfig{EnforceStockCeiling: true})
}

func sellDraft(lines ...entity.DraftLine) *entity.DraftInvoice {
	return &entity.DraftInvoice{Type: entity.InvoiceTypeSell, CustomerID: "c-1", Lines: lines}
}

func sellLine(productID string, qty, price string) entity.DraftLine {
	return entity.DraftLine{
		ProductID:   productID,
		ProductName: "Producto " + productID,
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
		PriceType:   entity.PriceTypeRetail,
	}
}

func TestValidate_VentaValidaPasa(t *testing.T) {
	draft := sellDraft(sellLine("P", "5", "20"))
	stock := invoicing.StockSnapshot{"P": dec("5")}

	err := newValidator().Validate(draft, stock)

	assert.NoError(t, err, "vender exactamente el disponible es válido")
}

func TestValidate_SinContraparte(t *testing.T) {
	draft := sellDraft(sellLine("P", "1", "20"))
	draft.CustomerID = ""

	err := newValidator().Validate(draft, invoicing.StockSnapshot{"P": dec("10")})

	assert.ErrorIs(t, err, invoicing.ErrMissingCounterparty)
}

func TestValidate_CompraSinProveedor(t *testing.T) {
	draft := &entity.DraftInvoice{
		Type:  entity.InvoiceTypeBuy,
		Lines: []entity.DraftLine{sellLine("P", "1", "10")},
	}

	err := newValidator().Validate(draft, invoicing.StockSnapshot{})

	assert.ErrorIs(t, err, invoicing.ErrMissingCounterparty)
}

func TestValidate_SinLineasConProducto(t *testing.T) {
	// Líneas sin producto elegido no cuentan
	draft := sellDraft(entity.DraftLine{Quantity: dec("1")})

	err := newValidator().Validate(draft, invoicing.StockSnapshot{})

	assert.ErrorIs(t, err, invoicing.ErrEmptyInvoice)
}

func TestValidate_ProductoDuplicado(t *testing.T) {
	draft := sellDraft(sellLine("P", "1", "20"), sellLine("P", "2", "20"))

	err := newValidator().Validate(draft, invoicing.StockSnapshot{"P": dec("10")})

	require.ErrorIs(t, err, invoicing.ErrDuplicateProduct)
	var vErr *invoicing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"P"}, vErr.ProductIDs, "el error debe nombrar el producto duplicado")
}

func TestValidate_CantidadCero(t *testing.T) {
	draft := sellDraft(sellLine("P", "0", "20"))

	err := newValidator().Validate(draft, invoicing.StockSnapshot{"P": dec("10")})

	assert.ErrorIs(t, err, invoicing.ErrInvalidQuantity)
}

func TestValidate_CompraSinCosto(t *testing.T) {
	draft := &entity.DraftInvoice{
		Type:       entity.InvoiceTypeBuy,
		SupplierID: "s-1",
		Lines:      []entity.DraftLine{sellLine("P", "10", "0")},
	}

	err := newValidator().Validate(draft, invoicing.StockSnapshot{})

	require.ErrorIs(t, err, invoicing.ErrMissingCost)
	var vErr *invoicing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Producto P"}, vErr.ProductNames)
}

// Las compras terminan en la regla de costo: sin techo de stock ni precio de
// venta que validar.
func TestValidate_CompraConCostoPasa(t *testing.T) {
	draft := &entity.DraftInvoice{
		Type:       entity.InvoiceTypeBuy,
		SupplierID: "s-1",
		Lines:      []entity.DraftLine{sellLine("P", "1000", "11")},
	}

	err := newValidator().Validate(draft, invoicing.StockSnapshot{})

	assert.NoError(t, err, "las compras no tienen techo de stock")
}

func TestValidate_VentaSinPrecio(t *testing.T) {
	draft := sellDraft(sellLine("P", "1", "0"))

	err := newValidator().Validate(draft, invoicing.StockSnapshot{"P": dec("10")})

	assert.ErrorIs(t, err, invoicing.ErrMissingPrice)
}

func TestValidate_VentaSobreStock(t *testing.T) {
	draft := sellDraft(sellLine("P", "6", "20"))

	err := newValidator().Validate(draft, invoicing.StockSnapshot{"P": dec("5")})

	require.ErrorIs(t, err, invoicing.ErrInsufficientStock)
	var vErr *invoicing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, dec("6").Equal(vErr.Requested), "el error debe traer lo pedido")
	assert.True(t, dec("5").Equal(vErr.Available), "el error debe traer lo disponible")
}

func TestValidate_TechoDesactivadoPermiteSobreStock(t *testing.T) {
	v := invoicing.NewLineValidator(invoicing.ValidatorConfig{EnforceStockCeiling: false})
	draft := sellDraft(sellLine("P", "6", "20"))

	err := v.Validate(draft, invoicing.StockSnapshot{"P": dec("5")})

	assert.NoError(t, err, "sin techo configurado, el stock no bloquea")
}

// El orden de los chequeos es fijo: gana la primera falla. Un borrador sin
// contraparte Y con duplicados reporta la contraparte primero.
func TestValidate_OrdenDeterminista(t *testing.T) {
	draft := sellDraft(sellLine("P", "0", "0"), sellLine("P", "2", "20"))
	draft.CustomerID = ""

	err := newValidator().Validate(draft, invoicing.StockSnapshot{})

	assert.ErrorIs(t, err, invoicing.ErrMissingCounterparty,
		"la contraparte se chequea antes que duplicados, cantidades y precios")

	draft.CustomerID = "c-1"
	err = newValidator().Validate(draft, invoicing.StockSnapshot{})
	assert.ErrorIs(t, err, invoicing.ErrDuplicateProduct,
		"con contraparte, la siguiente falla es el duplicado, no la cantidad")
}

func TestValidate_LineasSinProductoSeIgnoran(t *testing.T) {
	draft := sellDraft(
		entity.DraftLine{Quantity: decimal.Zero}, // sin producto, cantidad 0: ignorada
		sellLine("P", "1", "20"),
	)

	err := newValidator().Validate(draft, invoicing.StockSnapshot{"P": dec("10")})

	assert.NoError(t, err)
}

func TestValidationError_MensajeConDetalle(t *testing.T) {
	err := &invoicing.ValidationError{
		Err:          invoicing.ErrInsufficientStock,
		ProductNames: []string{"Azúcar"},
		Requested:    dec("6"),
		Available:    dec("5"),
	}

	assert.Contains(t, err.Error(), "Azúcar")
	assert.Contains(t, err.Error(), "6")
	assert.Contains(t, err.Error(), "5")
	assert.True(t, errors.Is(err, invoicing.ErrInsufficientStock), "Unwrap debe exponer el centinela")
}
