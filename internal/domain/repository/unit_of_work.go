package repository

// UnitOfWork agrupa los repositorios atados a una única transacción.
// Vive exactamente lo que dura una confirmación de venta.
type UnitOfWork interface {
	Products() ProductRepository
	Sales() SaleRepository
	Movements() InventoryMovementRepository
}
