package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ProductRepository acceso a productos del catálogo.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	// UpdateCost actualiza el costo promedio vigente del producto.
	UpdateCost(id string, cost decimal.Decimal) error
}
