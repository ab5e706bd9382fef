// Package inventory implementa el libro de inventario: verificación y descuento atómico de stock.
package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// Demand cantidad solicitada de un producto.
type Demand struct {
	ProductID string
	Quantity  int64
}

// MovementRef datos con los que se registra la salida en el kardex.
type MovementRef struct {
	TransactionID string // ID de la venta
	EmployeeID    string
	Date          time.Time
}

// Ledger verifica y descuenta stock dentro de la unidad de trabajo del caller.
type Ledger struct{}

// NewLedger construye el libro de inventario.
func NewLedger() *Ledger { return &Ledger{} }

// AggregateDemands suma las cantidades por producto conservando el orden de primera aparición.
func AggregateDemands(demands []Demand) []Demand {
	idx := make(map[string]int, len(demands))
	out := make([]Demand, 0, len(demands))
	for _, d := range demands {
		if i, ok := idx[d.ProductID]; ok {
			out[i].Quantity += d.Quantity
			continue
		}
		idx[d.ProductID] = len(out)
		out = append(out, d)
	}
	return out
}

// ReserveAndDecrement bloquea las filas de los productos (en orden ascendente de ID para evitar
// deadlocks), verifica que cada stock cubra la demanda agregada y solo entonces descuenta y
// registra un movimiento OUT por producto.
//
// Retorna *domain.UnknownProductError o *domain.InsufficientStockError (el primero en orden de la
// solicitud) sin haber escrito nada. Cualquier error obliga al caller a hacer rollback de la unidad.
func (l *Ledger) ReserveAndDecrement(ctx context.Context, uow repository.UnitOfWork, ref MovementRef, demands []Demand) error {
	agg := AggregateDemands(demands)
	if len(agg) == 0 {
		return domain.ErrInvalidRequest
	}
	ids := make([]string, 0, len(agg))
	for _, d := range agg {
		if d.Quantity <= 0 {
			return domain.ErrInvalidRequest
		}
		ids = append(ids, d.ProductID)
	}
	sort.Strings(ids)

	locked, err := uow.Products().LockForUpdate(ctx, ids)
	if err != nil {
		return err
	}

	// 1) Verificación completa antes de cualquier escritura
	for _, d := range agg {
		p, ok := locked[d.ProductID]
		if !ok || p == nil {
			return &domain.UnknownProductError{ProductID: d.ProductID}
		}
		if p.Stock < d.Quantity {
			return &domain.InsufficientStockError{ProductID: d.ProductID, Requested: d.Quantity, Available: p.Stock}
		}
	}

	// 2) Descuento y kardex, en el mismo orden en que se tomaron los bloqueos
	qty := make(map[string]int64, len(agg))
	for _, d := range agg {
		qty[d.ProductID] = d.Quantity
	}
	for _, id := range ids {
		stockAfter, err := uow.Products().DecrementStock(ctx, id, qty[id])
		if err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:            uuid.New().String(),
			TransactionID: ref.TransactionID,
			ProductID:     id,
			Type:          entity.MovementTypeOUT,
			Quantity:      -qty[id],
			StockAfter:    stockAfter,
			Date:          ref.Date,
			CreatedBy:     ref.EmployeeID,
		}
		if err := uow.Movements().Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}
