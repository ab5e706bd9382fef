package repository

import (
	"context"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter criterio de búsqueda del catálogo.
type ProductFilter struct {
	Search string
	Field  string // nombre | codigo | precio; vacío = sin filtro
	Price  *decimal.Decimal
	Limit  int
	Offset int
}

// Campos de búsqueda admitidos por ProductFilter.Field.
const (
	ProductFieldName  = "nombre"
	ProductFieldCode  = "codigo"
	ProductFieldPrice = "precio"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// LockForUpdate bloquea las filas de los productos (SELECT FOR UPDATE) en orden ascendente de ID.
	// Los IDs sin fila no aparecen en el mapa resultante.
	LockForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// DecrementStock resta quantity solo si el stock alcanza; si no, devuelve domain.ErrInsufficientStock.
	DecrementStock(ctx context.Context, id string, quantity int64) (stockAfter int64, err error)
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
