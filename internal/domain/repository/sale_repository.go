package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	// Create inserta la cabecera y asigna sale.Number desde la secuencia del almacén.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetLinesBySaleID(ctx context.Context, saleID string) ([]entity.SaleLine, error)
	// GetSnapshot lee en una sola consulta la venta con cliente, empleado y nombres de producto.
	// Devuelve (nil, nil) si la venta no existe.
	GetSnapshot(ctx context.Context, id string) (*entity.SaleSnapshot, error)
}
