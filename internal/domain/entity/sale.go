package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa la cabecera de una venta confirmada. Inmutable después del commit.
type Sale struct {
	ID         string
	Number     int64 // correlativo de factura asignado por el almacén al confirmar
	Date       time.Time
	ClientID   *string // nil = Consumidor Final
	EmployeeID string
	Total      decimal.Decimal
	Lines      []SaleLine
	CreatedAt  time.Time
}

// SaleLine representa una línea de la venta. UnitPrice es el precio capturado al vender,
// no se vuelve a leer del producto.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
