package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Tipos de error de dominio (sin dependencias de infraestructura).
// Los errores concretos envuelven uno de estos tipos; usar errors.Is para clasificarlos.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInsufficientFunds = errors.New("fondos insuficientes")
	ErrInvalidState      = errors.New("transición de estado no permitida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrDuplicate         = errors.New("recurso duplicado")
)

// Error es un error de dominio con tipo (Kind) y mensaje legible para el cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrNotFound) y similares.
func (e *Error) Unwrap() error { return e.Kind }

// Invalid construye un error InvalidRequest.
func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound construye un error NotFound para la entidad indicada ("producto", "kassa", ...).
func NotFound(entity, id string) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s %s no encontrado", entity, id)}
}

// InsufficientStock nombra el producto, lo disponible y lo solicitado.
func InsufficientStock(product string, available, requested int) error {
	return &Error{
		Kind:    ErrInsufficientStock,
		Message: fmt.Sprintf("stock insuficiente de %q: disponible %d, solicitado %d", product, available, requested),
	}
}

// InsufficientFunds indica que la caja no cubre el monto pedido.
func InsufficientFunds(registerID string, balance, amount decimal.Decimal) error {
	return &Error{
		Kind:    ErrInsufficientFunds,
		Message: fmt.Sprintf("saldo insuficiente en caja %s: saldo %s, monto %s", registerID, balance.String(), amount.String()),
	}
}

// InvalidState indica una transición de estado no permitida.
func InvalidState(format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Duplicate indica que ya existe un recurso con la misma clave única.
func Duplicate(format string, args ...any) error {
	return &Error{Kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

// Kind devuelve el tipo de dominio de err, o nil si es un error interno.
func Kind(err error) error {
	for _, k := range []error{
		ErrInvalidInput, ErrNotFound, ErrInsufficientStock, ErrInsufficientFunds,
		ErrInvalidState, ErrUnauthorized, ErrForbidden, ErrDuplicate,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
