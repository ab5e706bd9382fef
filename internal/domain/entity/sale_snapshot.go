package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleSnapshot es la lectura aplanada e inmutable de una venta confirmada con sus datos
// relacionados ya resueltos. Es la única entrada del render de factura.
type SaleSnapshot struct {
	SaleID       string
	Number       int64
	Date         time.Time
	Total        decimal.Decimal
	Client       *ClientSnapshot // nil = Consumidor Final
	EmployeeName string          // vacío si el empleado no se pudo resolver
	Lines        []SnapshotLine
}

// ClientSnapshot datos del cliente al momento de leer la venta.
type ClientSnapshot struct {
	Name  string
	TaxID string
}

// SnapshotLine línea con el nombre del producto y el precio guardado en la venta.
type SnapshotLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
