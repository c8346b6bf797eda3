// Package counterparty administra clientes y proveedores, las contrapartes
// de facturas de venta y compra respectivamente.
package counterparty

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// UseCase casos de uso de clientes y proveedores.
type UseCase struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(customerRepo repository.CustomerRepository, supplierRepo repository.SupplierRepository) *UseCase {
	return &UseCase{customerRepo: customerRepo, supplierRepo: supplierRepo}
}

// CreateCustomer crea un cliente.
func (uc *UseCase) CreateCustomer(in dto.CounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(c); err != nil {
		return nil, err
	}
	return &dto.CounterpartyResponse{ID: c.ID, Name: c.Name, Document: c.Document, Phone: c.Phone, Email: c.Email, Address: c.Address}, nil
}

// ListCustomers lista los clientes.
func (uc *UseCase) ListCustomers() ([]dto.CounterpartyResponse, error) {
	customers, err := uc.customerRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CounterpartyResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, dto.CounterpartyResponse{ID: c.ID, Name: c.Name, Document: c.Document, Phone: c.Phone, Email: c.Email, Address: c.Address})
	}
	return out, nil
}

// CreateSupplier crea un proveedor.
func (uc *UseCase) CreateSupplier(in dto.CounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return &dto.CounterpartyResponse{ID: s.ID, Name: s.Name, Document: s.Document, Phone: s.Phone, Email: s.Email, Address: s.Address}, nil
}

// ListSuppliers lista los proveedores.
func (uc *UseCase) ListSuppliers() ([]dto.CounterpartyResponse, error) {
	suppliers, err := uc.supplierRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CounterpartyResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.CounterpartyResponse{ID: s.ID, Name: s.Name, Document: s.Document, Phone: s.Phone, Email: s.Email, Address: s.Address})
	}
	return out, nil
}
