package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/memory"
)

const (
	pA = "00000000-0000-4000-8000-00000000000a"
	pB = "00000000-0000-4000-8000-00000000000b"
	pC = "00000000-0000-4000-8000-00000000000c"
)

func newStore(stocks map[string]int64) *memory.Store {
	s := memory.NewStore()
	for id, st := range stocks {
		s.AddProduct(entity.Product{ID: id, Name: id, Price: decimal.NewFromInt(1), Stock: st})
	}
	return s
}

func stockOf(t *testing.T, s *memory.Store, id string) int64 {
	t.Helper()
	p, err := s.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestAggregateDemands_SumaYConservaOrden(t *testing.T) {
	got := inventory.AggregateDemands([]inventory.Demand{
		{ProductID: pB, Quantity: 1},
		{ProductID: pA, Quantity: 2},
		{ProductID: pB, Quantity: 3},
	})
	assert.Equal(t, []inventory.Demand{{ProductID: pB, Quantity: 4}, {ProductID: pA, Quantity: 2}}, got)
}

func TestReserveAndDecrement_DescuentaYRegistraKardex(t *testing.T) {
	s := newStore(map[string]int64{pA: 10, pB: 3})
	ref := inventory.MovementRef{TransactionID: "venta-1", EmployeeID: "emp-1", Date: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	err := s.RunSale(context.Background(), func(uow repository.UnitOfWork) error {
		return inventory.NewLedger().ReserveAndDecrement(context.Background(), uow, ref, []inventory.Demand{
			{ProductID: pB, Quantity: 3},
			{ProductID: pA, Quantity: 4},
		})
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), stockOf(t, s, pA))
	assert.Equal(t, int64(0), stockOf(t, s, pB))

	movs, err := s.Movements().ListByTransaction(context.Background(), "venta-1")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	// orden de bloqueo: ID ascendente
	assert.Equal(t, pA, movs[0].ProductID)
	assert.Equal(t, int64(-4), movs[0].Quantity)
	assert.Equal(t, int64(6), movs[0].StockAfter)
	assert.Equal(t, pB, movs[1].ProductID)
	assert.Equal(t, "emp-1", movs[1].CreatedBy)
	assert.True(t, movs[1].Date.Equal(ref.Date))
}

func TestReserveAndDecrement_ReportaPrimerFaltanteEnOrdenDeSolicitud(t *testing.T) {
	s := newStore(map[string]int64{pA: 0, pB: 0, pC: 5})

	err := s.RunSale(context.Background(), func(uow repository.UnitOfWork) error {
		return inventory.NewLedger().ReserveAndDecrement(context.Background(), uow, inventory.MovementRef{}, []inventory.Demand{
			{ProductID: pC, Quantity: 1},
			{ProductID: pB, Quantity: 1},
			{ProductID: pA, Quantity: 1},
		})
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, pB, stockErr.ProductID)
	assert.Equal(t, int64(5), stockOf(t, s, pC))
}

func TestReserveAndDecrement_ProductoInexistente(t *testing.T) {
	s := newStore(map[string]int64{pA: 5})

	err := s.RunSale(context.Background(), func(uow repository.UnitOfWork) error {
		return inventory.NewLedger().ReserveAndDecrement(context.Background(), uow, inventory.MovementRef{}, []inventory.Demand{
			{ProductID: pA, Quantity: 1},
			{ProductID: pC, Quantity: 1},
		})
	})
	var unknown *domain.UnknownProductError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, pC, unknown.ProductID)
	assert.Equal(t, int64(5), stockOf(t, s, pA))
}

func TestReserveAndDecrement_DemandasInvalidas(t *testing.T) {
	s := newStore(map[string]int64{pA: 5})
	for _, demands := range [][]inventory.Demand{nil, {{ProductID: pA, Quantity: 0}}} {
		err := s.RunSale(context.Background(), func(uow repository.UnitOfWork) error {
			return inventory.NewLedger().ReserveAndDecrement(context.Background(), uow, inventory.MovementRef{}, demands)
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	}
	assert.Equal(t, int64(5), stockOf(t, s, pA))
}
