package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SupplierRepository acceso a proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
}
