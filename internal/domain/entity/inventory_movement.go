package entity

import "time"

// MovementTypeOUT salida de inventario por venta.
const MovementTypeOUT = "OUT"

// InventoryMovement registro del kardex. Quantity es negativa en salidas.
type InventoryMovement struct {
	ID            string
	TransactionID string // ID de la venta
	ProductID     string
	Type          string
	Quantity      int64
	StockAfter    int64
	Date          time.Time
	CreatedBy     string // ID del empleado
}
