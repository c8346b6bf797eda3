package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// CustomerRepository acceso a clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
}
