package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyStockSnapshot registra, por producto y por día, la cantidad disponible
// y el costo promedio de ese día. Existe un snapshot lógico por (producto, fecha);
// escrituras posteriores del mismo día lo reemplazan (gana el UpdatedAt mayor).
// Lo alimentan las compras y los ajustes de inventario; el envío de una venta
// descuenta el snapshot de hoy con guarda de cantidad suficiente.
type DailyStockSnapshot struct {
	ID        string
	ProductID string
	Date      time.Time       // día del snapshot (sin hora)
	Quantity  decimal.Decimal // cantidad disponible ese día
	AvgCost   decimal.Decimal // costo promedio vigente ese día
	CreatedAt time.Time
	UpdatedAt time.Time
}
