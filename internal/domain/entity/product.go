package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su existencia.
// Stock solo lo modifica el libro de inventario al confirmar una venta.
type Product struct {
	ID        string
	Code      string // código interno / de barras
	Name      string
	Price     decimal.Decimal // precio de venta de catálogo
	Stock     int64           // nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
