package http

import (
	"github.com/gofiber/fiber/v2"
	appinvoicing "github.com/tu-usuario/retail-pos/internal/application/invoicing"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
)

// InvoiceHandler maneja facturas persistidas (protegido).
type InvoiceHandler struct {
	editor *appinvoicing.DraftEditor
	submit *appinvoicing.SubmitDraftUseCase
}

// NewInvoiceHandler construye el handler de facturas.
func NewInvoiceHandler(editor *appinvoicing.DraftEditor, submit *appinvoicing.SubmitDraftUseCase) *InvoiceHandler {
	return &InvoiceHandler{editor: editor, submit: submit}
}

// GetByID obtiene el detalle completo de una factura.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.submit.GetInvoice(c.Params("id"))
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.JSON(invoice)
}

// OpenAsDraft carga una factura persistida como borrador editable. El estado
// de pagos viaja al borrador y limita qué operaciones acepta el editor.
// POST /api/invoices/:id/open
func (h *InvoiceHandler) OpenAsDraft(c *fiber.Ctx) error {
	draft, err := h.editor.OpenInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondEditorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// RegisterPayment registra un abono sobre la factura.
// POST /api/invoices/:id/payments
func (h *InvoiceHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.submit.RegisterPayment(c.Params("id"), in); err != nil {
		return respondEditorError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
