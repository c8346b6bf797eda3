// Package invoicing contiene el motor de conciliación de líneas de factura:
// resolución de precio efectivo, stock efectivo disponible dentro de un
// borrador y validación del conjunto de líneas antes del envío.
//
// Todo el paquete es computación pura sobre snapshots ya leídos: el catálogo,
// los precios vigentes y el stock del día entran como argumentos explícitos,
// nunca como estado ambiente.
package invoicing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// PriceSnapshot precios vigentes por producto (proyección del último PriceRecord).
type PriceSnapshot map[string]entity.ProductPrices

// ResolvedPrice resultado de resolver el precio de una línea.
// PriceMissing es una advertencia no fatal: la línea se crea con precio 0 y
// el validador bloquea el envío después (regla MissingPrice).
type ResolvedPrice struct {
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	PriceMissing bool
}

// ResolvePrice resuelve el precio unitario y el total de una línea.
//
// Reglas:
//   - Precio privado: el monto privado manda, sin importar el tipo de precio.
//     Puede ser 0 mientras el operador lo digita.
//   - Venta sin precio privado: precio retail o wholesale del último registro
//     vigente; si el tipo elegido no tiene valor, resuelve a 0 con PriceMissing.
//   - Compra: el costo es lo que realmente se pagó, no un precio de referencia;
//     el precio unitario NO se autocompleta, queda el que traiga la línea
//     (inicia en 0 y lo digita el operador).
func ResolvePrice(prices PriceSnapshot, invoiceType, productID, priceType string, isPrivate bool, privateAmount, currentUnitPrice, quantity decimal.Decimal) ResolvedPrice {
	if isPrivate {
		return ResolvedPrice{
			UnitPrice:  privateAmount,
			TotalPrice: privateAmount.Mul(quantity),
		}
	}

	if invoiceType == entity.InvoiceTypeBuy {
		return ResolvedPrice{
			UnitPrice:  currentUnitPrice,
			TotalPrice: currentUnitPrice.Mul(quantity),
		}
	}

	pp, ok := prices[productID]
	var unit *decimal.Decimal
	if ok {
		if priceType == entity.PriceTypeWholesale {
			unit = pp.Wholesale
		} else {
			unit = pp.Retail
		}
	}
	if unit == nil {
		return ResolvedPrice{
			UnitPrice:    decimal.Zero,
			TotalPrice:   decimal.Zero,
			PriceMissing: true,
		}
	}
	return ResolvedPrice{
		UnitPrice:  *unit,
		TotalPrice: unit.Mul(quantity),
	}
}

// RecomputeTotal recalcula el total de la línea a partir de su estado actual.
// Es idempotente: con los mismos insumos produce siempre el mismo total, lo
// que protege contra entrega duplicada de eventos desde la capa de UI.
func RecomputeTotal(line *entity.DraftLine) {
	line.TotalPrice = line.EffectivePrice().Mul(line.Quantity)
}
