package invoicing

import (
	"context"
	"sync"
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

// EditorConfig configura las variantes de editor como flags sobre un único
// motor, en vez de lógica re-derivada por pantalla.
type EditorConfig struct {
	// EnforceStockCeiling aplica el techo de stock efectivo en ventas.
	// Rechaza (no recorta) cantidades por encima del disponible.
	EnforceStockCeiling bool
	// AutoMergeDuplicates hace que agregar un producto ya presente sume 1 a
	// la línea existente (flujo de escáner) en vez de rechazar el duplicado.
	AutoMergeDuplicates bool
}

// DefaultEditorConfig techo de stock activo, sin auto-merge.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{EnforceStockCeiling: true}
}

// draftSession es el estado en memoria de un borrador en edición: el borrador
// más los snapshots de precios y stock con los que se está trabajando, y un
// índice línea-por-producto reconstruido en cada mutación (los chequeos de
// duplicado dejan de ser O(n²)).
type draftSession struct {
	draft         *entity.DraftInvoice
	prices        invoicing.PriceSnapshot
	stock         invoicing.StockSnapshot
	lineByProduct map[string]int

	// sourceInvoiceID no vacío cuando la sesión reabre una factura persistida.
	// committedQty guarda las cantidades ya persistidas por producto; en ventas
	// ese stock ya fue descontado del snapshot de hoy.
	sourceInvoiceID string
	committedQty    map[string]decimal.Decimal
}

func (s *draftSession) rebuildIndex() {
	s.lineByProduct = make(map[string]int, len(s.draft.Lines))
	for i := range s.draft.Lines {
		if id := s.draft.Lines[i].ProductID; id != "" {
			s.lineByProduct[id] = i
		}
	}
}

// restockCommitted devuelve al snapshot de stock de la sesión lo que la
// factura reabierta ya vendió: el disponible que ve el operador es el restante
// de hoy más lo que esta misma factura descontó al enviarse.
func (s *draftSession) restockCommitted() {
	if s.sourceInvoiceID == "" || s.draft.Type != entity.InvoiceTypeSell {
		return
	}
	for productID, qty := range s.committedQty {
		s.stock[productID] = s.stock.Base(productID).Add(qty)
	}
}

// DraftEditor administra borradores de factura en memoria y aplica el motor
// de conciliación en cada mutación. Los borradores son efímeros: al enviar se
// convierten en facturas persistidas y la sesión se descarta.
type DraftEditor struct {
	mu       sync.Mutex
	sessions map[string]*draftSession

	cfg          EditorConfig
	validator    *invoicing.LineValidator
	productRepo  repository.ProductRepository
	priceRepo    repository.PriceRecordRepository
	snapshotRepo repository.SnapshotRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	invoiceRepo  repository.InvoiceRepository
	log          *logger.Logger
}

// NewDraftEditor construye el editor.
func NewDraftEditor(
	cfg EditorConfig,
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRecordRepository,
	snapshotRepo repository.SnapshotRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	invoiceRepo repository.InvoiceRepository,
	log *logger.Logger,
) *DraftEditor {
	return &DraftEditor{
		sessions:     make(map[string]*draftSession),
		cfg:          cfg,
		validator:    invoicing.NewLineValidator(invoicing.ValidatorConfig{EnforceStockCeiling: cfg.EnforceStockCeiling}),
		productRepo:  productRepo,
		priceRepo:    priceRepo,
		snapshotRepo: snapshotRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
		log:          log,
	}
}

// CreateDraft abre un borrador nuevo y carga los snapshots de precios y stock.
func (e *DraftEditor) CreateDraft(ctx context.Context, in dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	if in.Type != entity.InvoiceTypeBuy && in.Type != entity.InvoiceTypeSell {
		return nil, domain.ErrInvalidInput
	}
	// Contraparte según tipo, mutuamente excluyente
	if in.Type == entity.InvoiceTypeSell {
		if in.SupplierID != "" {
			return nil, domain.ErrInvalidInput
		}
		if in.CustomerID != "" {
			customer, err := e.customerRepo.GetByID(in.CustomerID)
			if err != nil || customer == nil {
				return nil, domain.ErrNotFound
			}
		}
	} else {
		if in.CustomerID != "" {
			return nil, domain.ErrInvalidInput
		}
		if in.SupplierID != "" {
			supplier, err := e.supplierRepo.GetByID(in.SupplierID)
			if err != nil || supplier == nil {
				return nil, domain.ErrNotFound
			}
		}
	}

	prices, stock, err := e.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &draftSession{
		draft: &entity.DraftInvoice{
			ID:         uuid.New().String(),
			Type:       in.Type,
			CustomerID: in.CustomerID,
			SupplierID: in.SupplierID,
			DueDate:    in.DueDate,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		prices: prices,
		stock:  stock,
	}
	session.rebuildIndex()

	e.mu.Lock()
	e.sessions[session.draft.ID] = session
	e.mu.Unlock()

	return e.toResponse(session), nil
}

// OpenInvoice carga una factura persistida como borrador editable, atado a la
// factura de origen: el envío de esta sesión la actualiza en su lugar (nunca
// crea una segunda factura) y el stock se ajusta solo por la diferencia contra
// lo ya descontado. El estado de pagos viaja al borrador: con pagos
// registrados no se permiten agregar ni quitar líneas (las ediciones de
// cantidad y precio siguen permitidas).
func (e *DraftEditor) OpenInvoice(ctx context.Context, invoiceID string) (*dto.DraftResponse, error) {
	inv, err := e.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := e.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	prices, stock, err := e.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.DraftLine, 0, len(items))
	committed := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		line := entity.DraftLine{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			PriceType:     it.PriceType,
			IsPrivate:     it.IsPrivate,
			PrivateAmount: it.PrivateAmount,
			PrivateNote:   it.PrivateNote,
		}
		invoicing.RecomputeTotal(&line)
		lines = append(lines, line)
		committed[it.ProductID] = committed[it.ProductID].Add(it.Quantity)
	}

	session := &draftSession{
		draft: &entity.DraftInvoice{
			ID:          uuid.New().String(),
			Type:        inv.Type,
			CustomerID:  inv.CustomerID,
			SupplierID:  inv.SupplierID,
			DueDate:     inv.DueDate,
			Lines:       lines,
			HasPayments: inv.HasPayments,
			CreatedAt:   inv.CreatedAt,
			UpdatedAt:   time.Now(),
		},
		prices:          prices,
		stock:           stock,
		sourceInvoiceID: inv.ID,
		committedQty:    committed,
	}
	session.rebuildIndex()
	session.restockCommitted()

	e.mu.Lock()
	e.sessions[session.draft.ID] = session
	e.mu.Unlock()

	return e.toResponse(session), nil
}

// Get devuelve el estado actual de un borrador.
func (e *DraftEditor) Get(draftID string) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	return e.toResponse(session), nil
}

// Refresh recarga los snapshots de precios y stock y recalcula los totales de
// todas las líneas. El autor lo dispara al retomar un borrador viejo.
func (e *DraftEditor) Refresh(ctx context.Context, draftID string) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	prices, stock, err := e.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	session.prices = prices
	session.stock = stock
	session.restockCommitted()
	for i := range session.draft.Lines {
		line := &session.draft.Lines[i]
		if !line.HasProduct() || line.IsPrivate || session.draft.Type == entity.InvoiceTypeBuy {
			invoicing.RecomputeTotal(line)
			continue
		}
		resolved := invoicing.ResolvePrice(prices, session.draft.Type, line.ProductID, line.PriceType,
			line.IsPrivate, line.PrivateAmount, line.UnitPrice, line.Quantity)
		line.UnitPrice = resolved.UnitPrice
		line.TotalPrice = resolved.TotalPrice
		line.PriceMissing = resolved.PriceMissing
	}
	session.draft.UpdatedAt = time.Now()
	return e.toResponse(session), nil
}

// AddProduct agrega un producto al borrador (selección manual o escáner).
// Si el producto ya tiene línea, dirige al operador a esa línea: con
// AutoMergeDuplicates suma 1 a la existente, si no rechaza con
// ErrDuplicateProduct. Nunca crea una segunda línea del mismo producto.
func (e *DraftEditor) AddProduct(draftID string, in dto.AddProductRequest) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	draft := session.draft
	if draft.HasPayments {
		return nil, domain.ErrInvoiceLocked
	}

	product, err := e.lookupProduct(in)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	if idx, ok := session.lineByProduct[product.ID]; ok {
		if !e.cfg.AutoMergeDuplicates {
			return nil, &invoicing.ValidationError{Err: invoicing.ErrDuplicateProduct, ProductIDs: []string{product.ID}}
		}
		line := &draft.Lines[idx]
		newQty := line.Quantity.Add(one)
		if err := e.checkCeiling(session, idx, product.ID, newQty, product.Name); err != nil {
			return nil, err
		}
		line.Quantity = newQty
		invoicing.RecomputeTotal(line)
		draft.UpdatedAt = time.Now()
		return e.toResponse(session), nil
	}

	if err := e.checkCeiling(session, invoicing.NoLineExcluded, product.ID, one, product.Name); err != nil {
		return nil, err
	}

	priceType := entity.PriceTypeRetail
	if draft.Type == entity.InvoiceTypeBuy {
		// Compras: tipo mayorista por defecto, costo digitado por el operador
		priceType = entity.PriceTypeWholesale
	}
	line := entity.DraftLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Barcode:     in.Barcode,
		Quantity:    one,
		PriceType:   priceType,
	}
	resolved := invoicing.ResolvePrice(session.prices, draft.Type, product.ID, priceType,
		false, decimal.Zero, decimal.Zero, one)
	line.UnitPrice = resolved.UnitPrice
	line.TotalPrice = resolved.TotalPrice
	line.PriceMissing = resolved.PriceMissing
	if resolved.PriceMissing {
		// Advertencia no fatal: la línea se crea, el envío lo bloquea el validador
		e.log.Warn().Str("product_id", product.ID).Str("price_type", priceType).
			Msg("producto sin precio definido para el tipo elegido")
	}

	draft.Lines = append(draft.Lines, line)
	draft.UpdatedAt = time.Now()
	session.rebuildIndex()
	return e.toResponse(session), nil
}

// SetQuantity cambia la cantidad de una línea. Subir por encima del stock
// efectivo disponible (excluyendo la propia línea) se rechaza, no se recorta;
// bajar siempre está permitido.
func (e *DraftEditor) SetQuantity(draftID string, lineIdx int, qty decimal.Decimal) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	line, err := e.line(session, lineIdx)
	if err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, &invoicing.ValidationError{Err: invoicing.ErrInvalidQuantity, ProductNames: []string{line.ProductName}}
	}
	if qty.GreaterThan(line.Quantity) {
		if err := e.checkCeiling(session, lineIdx, line.ProductID, qty, line.ProductName); err != nil {
			return nil, err
		}
	}
	line.Quantity = qty
	if !line.IsPrivate && session.draft.Type == entity.InvoiceTypeSell {
		resolved := invoicing.ResolvePrice(session.prices, session.draft.Type, line.ProductID, line.PriceType,
			line.IsPrivate, line.PrivateAmount, line.UnitPrice, qty)
		line.UnitPrice = resolved.UnitPrice
		line.PriceMissing = resolved.PriceMissing
	}
	invoicing.RecomputeTotal(line)
	session.draft.UpdatedAt = time.Now()
	return e.toResponse(session), nil
}

// SetPriceType cambia retail/wholesale en una línea de venta y re-resuelve el
// precio desde el snapshot de precios vigentes.
func (e *DraftEditor) SetPriceType(draftID string, lineIdx int, priceType string) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	if session.draft.Type != entity.InvoiceTypeSell {
		return nil, domain.ErrInvalidInput
	}
	if priceType != entity.PriceTypeRetail && priceType != entity.PriceTypeWholesale {
		return nil, domain.ErrInvalidInput
	}
	line, err := e.line(session, lineIdx)
	if err != nil {
		return nil, err
	}
	line.PriceType = priceType
	resolved := invoicing.ResolvePrice(session.prices, session.draft.Type, line.ProductID, priceType,
		line.IsPrivate, line.PrivateAmount, line.UnitPrice, line.Quantity)
	line.UnitPrice = resolved.UnitPrice
	line.TotalPrice = resolved.TotalPrice
	line.PriceMissing = resolved.PriceMissing
	if resolved.PriceMissing {
		e.log.Warn().Str("product_id", line.ProductID).Str("price_type", priceType).
			Msg("producto sin precio definido para el tipo elegido")
	}
	session.draft.UpdatedAt = time.Now()
	return e.toResponse(session), nil
}

// SetUnitPrice digita el costo unitario en una línea de compra (lo realmente
// pagado al proveedor, no un precio de referencia).
func (e *DraftEditor) SetUnitPrice(draftID string, lineIdx int, price decimal.Decimal) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	if session.draft.Type != entity.InvoiceTypeBuy {
		return nil, domain.ErrInvalidInput
	}
	if price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	line, err := e.line(session, lineIdx)
	if err != nil {
		return nil, err
	}
	line.UnitPrice = price
	invoicing.RecomputeTotal(line)
	session.draft.UpdatedAt = time.Now()
	return e.toResponse(session), nil
}

// SetPrivatePrice activa o desactiva el precio privado de una línea. Al
// desactivarlo, el precio vuelve a resolverse desde el snapshot vigente.
func (e *DraftEditor) SetPrivatePrice(draftID string, lineIdx int, in dto.SetPrivatePriceRequest) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	line, err := e.line(session, lineIdx)
	if err != nil {
		return nil, err
	}
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	line.IsPrivate = in.IsPrivate
	line.PrivateAmount = in.Amount
	line.PrivateNote = in.Note
	resolved := invoicing.ResolvePrice(session.prices, session.draft.Type, line.ProductID, line.PriceType,
		line.IsPrivate, line.PrivateAmount, line.UnitPrice, line.Quantity)
	line.UnitPrice = resolved.UnitPrice
	line.TotalPrice = resolved.TotalPrice
	line.PriceMissing = resolved.PriceMissing
	session.draft.UpdatedAt = time.Now()
	return e.toResponse(session), nil
}

// RemoveLine quita una línea del borrador. Con pagos registrados la operación
// se rehúsa de plano (la UI deshabilita el control; aquí responde conflicto).
func (e *DraftEditor) RemoveLine(draftID string, lineIdx int) (*dto.DraftResponse, error) {
	session, err := e.session(draftID)
	if err != nil {
		return nil, err
	}
	if session.draft.HasPayments {
		return nil, domain.ErrInvoiceLocked
	}
	if lineIdx < 0 || lineIdx >= len(session.draft.Lines) {
		return nil, domain.ErrNotFound
	}
	session.draft.Lines = append(session.draft.Lines[:lineIdx], session.draft.Lines[lineIdx+1:]...)
	session.draft.UpdatedAt = time.Now()
	session.rebuildIndex()
	return e.toResponse(session), nil
}

// IsDuplicate indica si el producto ya tiene línea en el borrador y cuál.
// Lo usan tanto la selección manual como el flujo de escáner para dirigir al
// operador a la fila existente en vez de crear una segunda.
func (e *DraftEditor) IsDuplicate(draftID, productID string) (int, bool, error) {
	session, err := e.session(draftID)
	if err != nil {
		return 0, false, err
	}
	idx, ok := session.lineByProduct[productID]
	return idx, ok, nil
}

// Validate corre la validación completa de envío sin enviar.
func (e *DraftEditor) Validate(draftID string) error {
	session, err := e.session(draftID)
	if err != nil {
		return err
	}
	return e.validator.Validate(session.draft, session.stock)
}

// Discard descarta un borrador.
func (e *DraftEditor) Discard(draftID string) {
	e.mu.Lock()
	delete(e.sessions, draftID)
	e.mu.Unlock()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (e *DraftEditor) session(draftID string) (*draftSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[draftID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (e *DraftEditor) line(session *draftSession, idx int) (*entity.DraftLine, error) {
	if idx < 0 || idx >= len(session.draft.Lines) {
		return nil, domain.ErrNotFound
	}
	return &session.draft.Lines[idx], nil
}

func (e *DraftEditor) lookupProduct(in dto.AddProductRequest) (*entity.Product, error) {
	if in.Barcode != "" {
		product, err := e.productRepo.GetByBarcode(in.Barcode)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		return product, nil
	}
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := e.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// checkCeiling rechaza cantidades por encima del stock efectivo disponible
// (solo ventas, solo con el techo activo). Guarda de UX: el chequeo
// autoritativo corre en la persistencia al confirmar.
func (e *DraftEditor) checkCeiling(session *draftSession, excludeIdx int, productID string, qty decimal.Decimal, productName string) error {
	if session.draft.Type != entity.InvoiceTypeSell || !e.cfg.EnforceStockCeiling {
		return nil
	}
	available := invoicing.EffectiveAvailable(productID, session.stock.Base(productID), session.draft.Lines, excludeIdx)
	if qty.GreaterThan(available) {
		return &invoicing.ValidationError{
			Err:          invoicing.ErrInsufficientStock,
			ProductNames: []string{productName},
			Requested:    qty,
			Available:    available,
		}
	}
	return nil
}

func (e *DraftEditor) toResponse(session *draftSession) *dto.DraftResponse {
	draft := session.draft
	resp := &dto.DraftResponse{
		ID:          draft.ID,
		Type:        draft.Type,
		CustomerID:  draft.CustomerID,
		SupplierID:  draft.SupplierID,
		DueDate:     draft.DueDate,
		HasPayments: draft.HasPayments,
		Lines:       make([]dto.DraftLineDTO, 0, len(draft.Lines)),
		Total:       draft.Total(),
	}
	for i := range draft.Lines {
		line := &draft.Lines[i]
		available := decimal.Zero
		if line.HasProduct() {
			available = invoicing.EffectiveAvailable(line.ProductID, session.stock.Base(line.ProductID), draft.Lines, i)
		}
		resp.Lines = append(resp.Lines, dto.DraftLineDTO{
			Index:              i,
			ProductID:          line.ProductID,
			ProductName:        line.ProductName,
			Barcode:            line.Barcode,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			PriceType:          line.PriceType,
			IsPrivate:          line.IsPrivate,
			PrivateAmount:      line.PrivateAmount,
			PrivateNote:        line.PrivateNote,
			TotalPrice:         line.TotalPrice,
			PriceMissing:       line.PriceMissing,
			EffectiveAvailable: available,
		})
	}
	return resp
}

func (e *DraftEditor) fetchSnapshots(ctx context.Context) (invoicing.PriceSnapshot, invoicing.StockSnapshot, error) {
	latest, err := e.priceRepo.LatestForAllProducts()
	if err != nil {
		return nil, nil, err
	}
	today, err := e.snapshotRepo.TodayQuantities(ctx)
	if err != nil {
		return nil, nil, err
	}
	return invoicing.PriceSnapshot(latest), invoicing.StockSnapshot(today), nil
}
