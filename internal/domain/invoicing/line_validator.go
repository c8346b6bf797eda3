package invoicing

import (
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ValidatorConfig configura el validador por variante de editor.
// Las pantallas históricas divergían en reglas; aquí la variación es
// configuración sobre un único validador, no lógica re-derivada por pantalla.
type ValidatorConfig struct {
	// EnforceStockCeiling habilita el chequeo de stock efectivo en ventas
	// (regla 7). Es una guarda de UX: el chequeo autoritativo lo hace la
	// capa de persistencia al confirmar.
	EnforceStockCeiling bool
}

// LineValidator valida el conjunto completo de líneas antes del envío.
type LineValidator struct {
	cfg ValidatorConfig
}

// NewLineValidator construye el validador.
func NewLineValidator(cfg ValidatorConfig) *LineValidator {
	return &LineValidator{cfg: cfg}
}

// Validate corre los chequeos en orden fijo; gana la primera falla. El orden
// es determinista tanto para claridad de la UI como para testabilidad:
//
//	1. contraparte elegida          → ErrMissingCounterparty
//	2. al menos una línea con producto → ErrEmptyInvoice
//	3. sin productos duplicados     → ErrDuplicateProduct(ids)
//	4. cantidades > 0               → ErrInvalidQuantity
//	5. compras: costo unitario > 0  → ErrMissingCost
//	6. ventas: precio efectivo > 0  → ErrMissingPrice(nombres)
//	7. ventas: cantidad <= stock efectivo → ErrInsufficientStock(nombre, pedido, disponible)
//
// Las líneas sin producto elegido se ignoran en los chequeos 3–7.
// Retorna nil o *ValidationError.
func (v *LineValidator) Validate(draft *entity.DraftInvoice, stock StockSnapshot) error {
	// 1. Contraparte
	if draft.Type == entity.InvoiceTypeSell && draft.CustomerID == "" {
		return &ValidationError{Err: ErrMissingCounterparty}
	}
	if draft.Type == entity.InvoiceTypeBuy && draft.SupplierID == "" {
		return &ValidationError{Err: ErrMissingCounterparty}
	}

	// 2. Al menos una línea con producto
	selected := 0
	for i := range draft.Lines {
		if draft.Lines[i].HasProduct() {
			selected++
		}
	}
	if selected == 0 {
		return &ValidationError{Err: ErrEmptyInvoice}
	}

	// 3. Duplicados entre líneas con producto
	seen := make(map[string]bool, len(draft.Lines))
	var dups []string
	for i := range draft.Lines {
		id := draft.Lines[i].ProductID
		if id == "" {
			continue
		}
		if seen[id] {
			dups = append(dups, id)
		}
		seen[id] = true
	}
	if len(dups) > 0 {
		return &ValidationError{Err: ErrDuplicateProduct, ProductIDs: dups}
	}

	// 4. Cantidades positivas
	for i := range draft.Lines {
		line := &draft.Lines[i]
		if line.HasProduct() && !line.Quantity.IsPositive() {
			return &ValidationError{Err: ErrInvalidQuantity, ProductNames: []string{line.ProductName}}
		}
	}

	// 5. Compras: el costo ingresado debe ser positivo
	if draft.Type == entity.InvoiceTypeBuy {
		var missing []string
		for i := range draft.Lines {
			line := &draft.Lines[i]
			if line.HasProduct() && !line.UnitPrice.IsPositive() {
				missing = append(missing, line.ProductName)
			}
		}
		if len(missing) > 0 {
			return &ValidationError{Err: ErrMissingCost, ProductNames: missing}
		}
		return nil
	}

	// 6. Ventas: precio efectivo positivo
	var unpriced []string
	for i := range draft.Lines {
		line := &draft.Lines[i]
		if line.HasProduct() && !line.EffectivePrice().IsPositive() {
			unpriced = append(unpriced, line.ProductName)
		}
	}
	if len(unpriced) > 0 {
		return &ValidationError{Err: ErrMissingPrice, ProductNames: unpriced}
	}

	// 7. Ventas: techo de stock efectivo (guarda de UX, no garantía)
	if v.cfg.EnforceStockCeiling {
		for i := range draft.Lines {
			line := &draft.Lines[i]
			if !line.HasProduct() {
				continue
			}
			available := EffectiveAvailable(line.ProductID, stock.Base(line.ProductID), draft.Lines, i)
			if line.Quantity.GreaterThan(available) {
				return &ValidationError{
					Err:          ErrInsufficientStock,
					ProductNames: []string{line.ProductName},
					Requested:    line.Quantity,
					Available:    available,
				}
			}
		}
	}

	return nil
}
