package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrAlreadyRefunded = errors.New("la venta ya fue reembolsada")
	ErrUnavailable     = errors.New("producto no disponible para venta")

	// ErrInsufficientStock permite errors.Is sobre cualquier InsufficientStockError.
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError indica que la cantidad solicitada supera el stock
// disponible. Conserva ambos valores para que el caller los reporte.
type InsufficientStockError struct {
	ProductName string
	SKU         string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): disponible %d, solicitado %d",
		e.ProductName, e.SKU, e.Available, e.Requested)
}

// Is hace que errors.Is(err, ErrInsufficientStock) funcione con el tipo estructurado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ProductUnavailableError indica que el producto existe pero no está activo.
type ProductUnavailableError struct {
	ProductName string
	Status      string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("el producto %s no está disponible (estado: %s)", e.ProductName, e.Status)
}

func (e *ProductUnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// ValidationError reporta un problema de validación por campo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
