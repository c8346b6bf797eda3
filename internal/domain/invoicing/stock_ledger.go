package invoicing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// NoLineExcluded indica que ninguna línea se excluye del cálculo de reservas.
const NoLineExcluded = -1

// StockSnapshot cantidad disponible hoy por producto.
type StockSnapshot map[string]decimal.Decimal

// Base devuelve la cantidad base del snapshot para un producto (0 si no existe).
func (s StockSnapshot) Base(productID string) decimal.Decimal {
	if qty, ok := s[productID]; ok {
		return qty
	}
	return decimal.Zero
}

// EffectiveAvailable calcula cuánto queda disponible de un producto dentro de
// un borrador de venta: la cantidad base del snapshot menos lo ya reservado
// por las otras líneas del mismo borrador (semántica "reservar al agregar").
// La reserva es puramente local al borrador; ningún movimiento persistido
// ocurre hasta el envío.
//
// excludeIdx permite que el editor de cantidad de una línea pregunte "cuánto
// más puedo pedir" sin restar dos veces su propia cantidad actual; usar
// NoLineExcluded para no excluir ninguna.
//
// Nunca retorna negativo. Solo aplica a ventas: las compras no tienen techo.
func EffectiveAvailable(productID string, base decimal.Decimal, lines []entity.DraftLine, excludeIdx int) decimal.Decimal {
	reserved := decimal.Zero
	for i := range lines {
		if i == excludeIdx {
			continue
		}
		if lines[i].ProductID == productID {
			reserved = reserved.Add(lines[i].Quantity)
		}
	}
	available := base.Sub(reserved)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}
