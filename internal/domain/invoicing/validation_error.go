package invoicing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores centinela de validación. Permiten a los callers manejar fallas de
// negocio de forma programática (errors.Is) mientras ValidationError aporta
// el detalle accionable (productos y cantidades ofensoras).
var (
	ErrMissingCounterparty = errors.New("falta la contraparte de la factura")
	ErrEmptyInvoice        = errors.New("la factura no tiene líneas con producto")
	ErrDuplicateProduct    = errors.New("producto duplicado en la factura")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrMissingCost         = errors.New("costo no ingresado")
	ErrMissingPrice        = errors.New("precio no definido")
	ErrInsufficientStock   = errors.New("stock insuficiente")
)

// ValidationError envuelve un centinela con el detalle del producto o
// productos que causaron la falla, para que la UI pueda mostrar un mensaje
// accionable. Siempre recuperable: bloquea el envío pero no es fatal.
type ValidationError struct {
	Err          error
	ProductIDs   []string        // DuplicateProduct
	ProductNames []string        // MissingPrice, InsufficientStock
	Requested    decimal.Decimal // InsufficientStock
	Available    decimal.Decimal // InsufficientStock
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrDuplicateProduct) && len(e.ProductIDs) > 0:
		return fmt.Sprintf("%s: %s", e.Err.Error(), strings.Join(e.ProductIDs, ", "))
	case errors.Is(e.Err, ErrInsufficientStock) && len(e.ProductNames) > 0:
		return fmt.Sprintf("%s: %s (solicitado %s, disponible %s)",
			e.Err.Error(), e.ProductNames[0], e.Requested.String(), e.Available.String())
	case len(e.ProductNames) > 0:
		return fmt.Sprintf("%s: %s", e.Err.Error(), strings.Join(e.ProductNames, ", "))
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
