package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/counterparty"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
)

// CounterpartyHandler maneja clientes y proveedores (protegido).
type CounterpartyHandler struct {
	uc *counterparty.UseCase
}

// NewCounterpartyHandler construye el handler de contrapartes.
func NewCounterpartyHandler(uc *counterparty.UseCase) *CounterpartyHandler {
	return &CounterpartyHandler{uc: uc}
}

// CreateCustomer crea un cliente.
// POST /api/customers
func (h *CounterpartyHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CounterpartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCustomer(in)
	if err != nil {
		return respondCounterpartyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCustomers lista los clientes.
// GET /api/customers
func (h *CounterpartyHandler) ListCustomers(c *fiber.Ctx) error {
	out, err := h.uc.ListCustomers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateSupplier crea un proveedor.
// POST /api/suppliers
func (h *CounterpartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CounterpartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSupplier(in)
	if err != nil {
		return respondCounterpartyError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers lista los proveedores.
// GET /api/suppliers
func (h *CounterpartyHandler) ListSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.ListSuppliers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func respondCounterpartyError(c *fiber.Ctx, err error) error {
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if err == domain.ErrDuplicate {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "documento ya registrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
