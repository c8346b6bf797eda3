package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	appinvoicing "github.com/tu-usuario/retail-pos/internal/application/invoicing"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/invoicing"
)

// DraftHandler maneja la edición de borradores de factura (protegido).
type DraftHandler struct {
	editor *appinvoicing.DraftEditor
	submit *appinvoicing.SubmitDraftUseCase
}

// NewDraftHandler construye el handler de borradores.
func NewDraftHandler(editor *appinvoicing.DraftEditor, submit *appinvoicing.SubmitDraftUseCase) *DraftHandler {
	return &DraftHandler{editor: editor, submit: submit}
}

// Create abre un borrador nuevo.
// POST /api/drafts
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.editor.CreateDraft(c.Context(), in)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// Get devuelve el estado actual de un borrador.
// GET /api/drafts/:id
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	draft, err := h.editor.Get(c.Params("id"))
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// Refresh recarga precios y stock vigentes y recalcula los totales.
// POST /api/drafts/:id/refresh
func (h *DraftHandler) Refresh(c *fiber.Ctx) error {
	draft, err := h.editor.Refresh(c.Context(), c.Params("id"))
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// AddProduct agrega un producto al borrador, por ID o por código de barras.
// POST /api/drafts/:id/lines
func (h *DraftHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.AddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.editor.AddProduct(c.Params("id"), in)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// SetQuantity cambia la cantidad de una línea.
// PUT /api/drafts/:id/lines/:idx/quantity
func (h *DraftHandler) SetQuantity(c *fiber.Ctx) error {
	idx, err := lineIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.editor.SetQuantity(c.Params("id"), idx, in.Quantity)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// SetPriceType cambia retail/wholesale en una línea de venta.
// PUT /api/drafts/:id/lines/:idx/price-type
func (h *DraftHandler) SetPriceType(c *fiber.Ctx) error {
	idx, err := lineIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	var in dto.SetPriceTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.editor.SetPriceType(c.Params("id"), idx, in.PriceType)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// SetUnitPrice digita el costo unitario en una línea de compra.
// PUT /api/drafts/:id/lines/:idx/unit-price
func (h *DraftHandler) SetUnitPrice(c *fiber.Ctx) error {
	idx, err := lineIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	var in dto.SetUnitPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.editor.SetUnitPrice(c.Params("id"), idx, in.UnitPrice)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// SetPrivatePrice activa o desactiva el precio privado de una línea.
// PUT /api/drafts/:id/lines/:idx/private-price
func (h *DraftHandler) SetPrivatePrice(c *fiber.Ctx) error {
	idx, err := lineIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	var in dto.SetPrivatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.editor.SetPrivatePrice(c.Params("id"), idx, in)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// RemoveLine quita una línea del borrador.
// DELETE /api/drafts/:id/lines/:idx
func (h *DraftHandler) RemoveLine(c *fiber.Ctx) error {
	idx, err := lineIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	draft, err := h.editor.RemoveLine(c.Params("id"), idx)
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(draft)
}

// IsDuplicate indica si un producto ya tiene línea en el borrador y cuál.
// GET /api/drafts/:id/duplicate/:productId
func (h *DraftHandler) IsDuplicate(c *fiber.Ctx) error {
	idx, ok, err := h.editor.IsDuplicate(c.Params("id"), c.Params("productId"))
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(fiber.Map{"duplicate": ok, "line_index": idx})
}

// Validate corre la validación completa de envío sin enviar.
// POST /api/drafts/:id/validate
func (h *DraftHandler) Validate(c *fiber.Ctx) error {
	if err := h.editor.Validate(c.Params("id")); err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(fiber.Map{"valid": true})
}

// Submit convierte el borrador en una factura persistida.
// POST /api/drafts/:id/submit
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	out, err := h.submit.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Discard descarta el borrador.
// DELETE /api/drafts/:id
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	h.editor.Discard(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func lineIndex(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("idx"))
}

// respondEditorError traduce errores del editor y del motor de validación a
// respuestas HTTP. Los de validación llevan código propio y el detalle del
// producto ofensor; los centinelas de dominio siguen el mapeo estándar.
func respondEditorError(c *fiber.Ctx, err error) error {
	var vErr *invoicing.ValidationError
	if errors.As(err, &vErr) {
		status := fiber.StatusUnprocessableEntity
		code := "VALIDATION"
		switch {
		case errors.Is(vErr.Err, invoicing.ErrDuplicateProduct):
			code = "DUPLICATE_PRODUCT"
			status = fiber.StatusConflict
		case errors.Is(vErr.Err, invoicing.ErrInsufficientStock):
			code = "INSUFFICIENT_STOCK"
			status = fiber.StatusConflict
		case errors.Is(vErr.Err, invoicing.ErrMissingCounterparty):
			code = "MISSING_COUNTERPARTY"
		case errors.Is(vErr.Err, invoicing.ErrEmptyInvoice):
			code = "EMPTY_INVOICE"
		case errors.Is(vErr.Err, invoicing.ErrInvalidQuantity):
			code = "INVALID_QUANTITY"
		case errors.Is(vErr.Err, invoicing.ErrMissingCost):
			code = "MISSING_COST"
		case errors.Is(vErr.Err, invoicing.ErrMissingPrice):
			code = "MISSING_PRICE"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: vErr.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvoiceLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVOICE_LOCKED", Message: "la factura tiene pagos registrados; no se pueden agregar ni quitar líneas"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente al confirmar; recargue el borrador"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
