package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/invoicing"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// SubmitDraftUseCase convierte un borrador validado en una factura persistida.
//
// El chequeo de stock del editor es solo una guarda de UX sobre un snapshot
// que pudo quedar viejo (dos operadores vendiendo el mismo producto a la
// vez). El chequeo que vale es el descuento condicionado del snapshot de hoy
// dentro de la transacción de escritura: si falla, la transacción completa se
// revierte y el error sube tal cual, sin reintento — reintentar una escritura
// financiera sin garantías de idempotencia no es seguro. El caller debe
// recargar estado y dejar decidir al operador.
type SubmitDraftUseCase struct {
	editor   *DraftEditor
	txRunner SubmitTxRunner
	log      *logger.Logger
}

// NewSubmitDraftUseCase construye el caso de uso.
func NewSubmitDraftUseCase(editor *DraftEditor, txRunner SubmitTxRunner, log *logger.Logger) *SubmitDraftUseCase {
	return &SubmitDraftUseCase{editor: editor, txRunner: txRunner, log: log}
}

// Submit corre la validación final y persiste en una sola transacción. Un
// borrador nuevo crea factura y líneas y descuenta el stock de hoy (ventas);
// un borrador que reabrió una factura persistida la actualiza en su lugar y
// ajusta el stock solo por la diferencia. Devuelve el ID persistido. Las
// líneas sin producto elegido se descartan al convertir.
func (uc *SubmitDraftUseCase) Submit(ctx context.Context, draftID string) (*dto.SubmitDraftResponse, error) {
	session, err := uc.editor.session(draftID)
	if err != nil {
		return nil, err
	}
	draft := session.draft

	// Pasada final del validador antes de tocar la BD
	if err := uc.editor.validator.Validate(draft, session.stock); err != nil {
		return nil, err
	}
	if session.sourceInvoiceID != "" {
		return uc.resubmit(ctx, draftID, session)
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		Type:       draft.Type,
		CustomerID: draft.CustomerID,
		SupplierID: draft.SupplierID,
		Date:       now,
		DueDate:    draft.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	items, total := draftItems(draft, inv.ID)
	inv.Total = total

	err = uc.txRunner.RunSubmit(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		snapshotRepo repository.SnapshotRepository,
	) error {
		// Ventas: descuento condicionado por línea; sin cantidad suficiente
		// la guarda falla, se hace rollback y sube ErrInsufficientStock
		if inv.Type == entity.InvoiceTypeSell {
			for _, item := range items {
				if err := snapshotRepo.DecrementWithGuard(item.ProductID, now, item.Quantity); err != nil {
					return err
				}
			}
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("draft_id", draftID).Msg("envío de factura rechazado")
		return nil, err
	}

	uc.editor.Discard(draftID)
	uc.log.Info().Str("invoice_id", inv.ID).Str("type", inv.Type).Msg("factura registrada")
	return &dto.SubmitDraftResponse{InvoiceID: inv.ID, Total: inv.Total}, nil
}

// resubmit persiste los cambios de una factura reabierta sobre la factura
// original: reemplaza las líneas, actualiza el total y ajusta el stock de hoy
// solo por la diferencia por producto contra lo ya descontado. Nunca crea una
// factura nueva ni vuelve a descontar lo ya vendido.
func (uc *SubmitDraftUseCase) resubmit(ctx context.Context, draftID string, session *draftSession) (*dto.SubmitDraftResponse, error) {
	existing, err := uc.editor.invoiceRepo.GetByID(session.sourceInvoiceID)
	if err != nil || existing == nil {
		return nil, domain.ErrNotFound
	}

	items, total := draftItems(session.draft, existing.ID)
	existing.DueDate = session.draft.DueDate
	existing.Total = total
	existing.UpdatedAt = time.Now()

	// Diferencia por producto: positivo descuenta con guarda, negativo
	// devuelve stock (línea reducida o eliminada)
	deltas := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		deltas[item.ProductID] = deltas[item.ProductID].Add(item.Quantity)
	}
	for productID, qty := range session.committedQty {
		deltas[productID] = deltas[productID].Sub(qty)
	}

	now := time.Now()
	err = uc.txRunner.RunSubmit(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		snapshotRepo repository.SnapshotRepository,
	) error {
		if existing.Type == entity.InvoiceTypeSell {
			for productID, delta := range deltas {
				switch {
				case delta.IsPositive():
					if err := snapshotRepo.DecrementWithGuard(productID, now, delta); err != nil {
						return err
					}
				case delta.IsNegative():
					if err := snapshotRepo.Increment(productID, now, delta.Neg()); err != nil {
						return err
					}
				}
			}
		}
		if err := invoiceRepo.DeleteItemsByInvoiceID(existing.ID); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return invoiceRepo.UpdateHeader(existing)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", existing.ID).Msg("actualización de factura rechazada")
		return nil, err
	}

	uc.editor.Discard(draftID)
	uc.log.Info().Str("invoice_id", existing.ID).Str("type", existing.Type).Msg("factura actualizada")
	return &dto.SubmitDraftResponse{InvoiceID: existing.ID, Total: total}, nil
}

// draftItems convierte las líneas con producto del borrador en líneas de
// factura y devuelve el total, recalculando cada total de línea antes.
func draftItems(draft *entity.DraftInvoice, invoiceID string) ([]*entity.InvoiceItem, decimal.Decimal) {
	var items []*entity.InvoiceItem
	total := decimal.Zero
	for i := range draft.Lines {
		line := &draft.Lines[i]
		if !line.HasProduct() {
			continue
		}
		invoicing.RecomputeTotal(line)
		items = append(items, &entity.InvoiceItem{
			ID:            uuid.New().String(),
			InvoiceID:     invoiceID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			PriceType:     line.PriceType,
			IsPrivate:     line.IsPrivate,
			PrivateAmount: line.PrivateAmount,
			PrivateNote:   line.PrivateNote,
			Total:         line.TotalPrice,
		})
		total = total.Add(line.TotalPrice)
	}
	return items, total
}

// RegisterPayment registra un abono sobre una factura persistida y marca su
// estado de pagos. Desde ese momento el editor rehúsa agregar o quitar líneas.
func (uc *SubmitDraftUseCase) RegisterPayment(invoiceID string, in dto.RegisterPaymentRequest) error {
	if !in.Amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	return uc.editor.invoiceRepo.RegisterPayment(invoiceID, in.Amount, time.Now())
}

// GetInvoice obtiene una factura persistida con su detalle completo.
func (uc *SubmitDraftUseCase) GetInvoice(invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.editor.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.editor.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceResponse{
		ID:          inv.ID,
		Type:        inv.Type,
		CustomerID:  inv.CustomerID,
		SupplierID:  inv.SupplierID,
		Date:        inv.Date,
		DueDate:     inv.DueDate,
		Total:       inv.Total,
		HasPayments: inv.HasPayments,
		PaidAmount:  inv.PaidAmount,
		Items:       make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			PriceType:     it.PriceType,
			IsPrivate:     it.IsPrivate,
			PrivateAmount: it.PrivateAmount,
			Total:         it.Total,
		})
	}
	return resp, nil
}
