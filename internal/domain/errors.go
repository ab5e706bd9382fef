package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Cada falla de una venta tiene un error propio para que el cliente decida si reintentar,
// corregir la entrada o volver a autenticarse.
var (
	ErrInvalidRequest          = errors.New("solicitud inválida")
	ErrUnauthenticatedEmployee = errors.New("empleado no autenticado")
	ErrUnknownClient           = errors.New("el cliente seleccionado no existe")
	ErrUnknownProduct          = errors.New("el producto no existe")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrStorageConflict         = errors.New("conflicto de concurrencia, reintente la venta")
	ErrSaleNotFound            = errors.New("venta no encontrada")
	ErrAmountOverflow          = errors.New("monto fuera de rango")

	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// InsufficientStockError identifica el producto que no alcanza a cubrir la demanda.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// UnknownProductError identifica el producto referenciado que no existe.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("el producto con ID %s no existe", e.ProductID)
}

func (e *UnknownProductError) Unwrap() error { return ErrUnknownProduct }
