package repository

import (
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// PriceRecordRepository acceso al historial de precios de venta.
// Los registros son inmutables: solo Create, nunca Update.
type PriceRecordRepository interface {
	Create(r *entity.PriceRecord) error
	// HistoryByProduct devuelve los registros de un producto, más reciente primero.
	HistoryByProduct(productID string) ([]*entity.PriceRecord, error)
	// LatestForAllProducts devuelve los precios vigentes de todos los productos
	// (el registro con fecha efectiva más reciente <= ahora, por producto).
	LatestForAllProducts() (map[string]entity.ProductPrices, error)
}
