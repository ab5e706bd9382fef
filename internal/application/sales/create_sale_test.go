package sales_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/memory"
)

const (
	employeeID = "7d0f3c2e-5a1b-4c8d-9e2f-1a2b3c4d5e6f"
	clientID   = "3b9e1f7a-2c4d-4e6f-8a1b-9c0d1e2f3a4b"
	productA   = "0a1b2c3d-0000-4000-8000-000000000001"
	productB   = "0a1b2c3d-0000-4000-8000-000000000002"
	missingID  = "0a1b2c3d-0000-4000-8000-0000000000ff"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

// countingRunner cuenta cuántas transacciones se abren.
type countingRunner struct {
	inner sales.SalesTxRunner
	calls atomic.Int32
}

func (r *countingRunner) RunSale(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	r.calls.Add(1)
	return r.inner.RunSale(ctx, fn)
}

// countingClients cuenta lecturas de clientes.
type countingClients struct {
	inner repository.ClientRepository
	calls atomic.Int32
}

func (c *countingClients) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c.calls.Add(1)
	return c.inner.GetByID(ctx, id)
}

func (c *countingClients) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	c.calls.Add(1)
	return c.inner.List(ctx, limit, offset)
}

type fixture struct {
	store   *memory.Store
	runner  *countingRunner
	clients *countingClients
	uc      *sales.CreateSaleUseCase
}

func newFixture(t *testing.T, opts ...memory.Option) *fixture {
	t.Helper()
	store := memory.NewStore(opts...)
	store.AddEmployee(entity.Employee{ID: employeeID, Name: "Ana López", Email: "ana@pos.local", Role: entity.RoleVendedor, Status: entity.EmployeeStatusActive})
	store.AddClient(entity.Client{ID: clientID, Name: "Juan Pérez", TaxID: "1234567-8"})
	f := &fixture{
		store:   store,
		runner:  &countingRunner{inner: store},
		clients: &countingClients{inner: store.Clients()},
	}
	f.uc = sales.NewCreateSaleUseCase(sales.NewValidator(f.clients), f.runner, inventory.NewLedger(), zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) addProduct(id, name, price string, stock int64) {
	f.store.AddProduct(entity.Product{ID: id, Code: id[len(id)-3:], Name: name, Price: decimal.RequireFromString(price), Stock: stock})
}

func (f *fixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func line(productID string, qty int64, price string) dto.CreateSaleLineRequest {
	return dto.CreateSaleLineRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestCreateSale_StockExactoSeAgota(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)

	res, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 10, "12.50")},
	})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.RequireFromString("125.00")))
	assert.Equal(t, int64(1), res.Number)
	assert.Equal(t, int64(0), f.stock(t, productA))

	sale, err := f.store.Sales().GetByID(context.Background(), res.SaleID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, employeeID, sale.EmployeeID)
	assert.Nil(t, sale.ClientID)
	assert.True(t, sale.Date.Equal(fixedNow))
	require.Len(t, sale.Lines, 1)
	assert.True(t, sale.Lines[0].Subtotal.Equal(decimal.RequireFromString("125.00")))

	movs, err := f.store.Movements().ListByTransaction(context.Background(), res.SaleID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, int64(-10), movs[0].Quantity)
	assert.Equal(t, int64(0), movs[0].StockAfter)
}

func TestCreateSale_StockInsuficienteNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 5)

	res, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 6, "12.50")},
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, productA, stockErr.ProductID)
	assert.Equal(t, int64(6), stockErr.Requested)
	assert.Equal(t, int64(5), stockErr.Available)
	assert.Equal(t, int64(5), f.stock(t, productA))

	// el correlativo no se consumió
	ok, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 5, "12.50")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ok.Number)
}

func TestCreateSale_SinLineasNoTocaAlmacen(t *testing.T) {
	f := newFixture(t)
	cid := clientID

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{ClientID: &cid})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, int32(0), f.runner.calls.Load())
	assert.Equal(t, int32(0), f.clients.calls.Load())
}

func TestCreateSale_LineasInvalidas(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)

	cases := map[string]dto.CreateSaleLineRequest{
		"cantidad cero":       line(productA, 0, "1.00"),
		"cantidad negativa":   line(productA, -1, "1.00"),
		"precio negativo":     line(productA, 1, "-0.01"),
		"fracción de centavo": line(productA, 3, "0.333"),
		"producto mal formado": {
			ProductID: "no-es-uuid", Quantity: 1, UnitPrice: decimal.NewFromInt(1),
		},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
				Lines: []dto.CreateSaleLineRequest{line(productA, 1, "12.50"), l},
			})
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
	assert.Equal(t, int32(0), f.runner.calls.Load())
	assert.Equal(t, int64(10), f.stock(t, productA))
}

func TestCreateSale_PrecioConCerosExtraSeAcepta(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "0.33", 10)

	res, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 3, "0.330")},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.99", res.Total.StringFixed(2))

	sale, err := f.store.Sales().GetByID(context.Background(), res.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Lines, 1)
	l := sale.Lines[0]
	assert.True(t, sale.Total.Equal(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))))
}

func TestCreateSale_EmpleadoNoAutenticado(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)

	for _, id := range []string{"", "   ", "abc"} {
		_, err := f.uc.CreateSale(context.Background(), id, dto.CreateSaleRequest{
			Lines: []dto.CreateSaleLineRequest{line(productA, 1, "12.50")},
		})
		assert.ErrorIs(t, err, domain.ErrUnauthenticatedEmployee)
	}
	assert.Equal(t, int32(0), f.runner.calls.Load())
}

func TestCreateSale_ClienteDesconocido(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)
	unknown := missingID

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		ClientID: &unknown,
		Lines:    []dto.CreateSaleLineRequest{line(productA, 1, "12.50")},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownClient)
	assert.Equal(t, int32(0), f.runner.calls.Load())
	assert.Equal(t, int64(10), f.stock(t, productA))
}

func TestCreateSale_ConCliente(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)
	cid := clientID

	res, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		ClientID: &cid,
		Lines:    []dto.CreateSaleLineRequest{line(productA, 1, "12.50")},
	})
	require.NoError(t, err)
	sale, err := f.store.Sales().GetByID(context.Background(), res.SaleID)
	require.NoError(t, err)
	require.NotNil(t, sale.ClientID)
	assert.Equal(t, clientID, *sale.ClientID)
}

func TestCreateSale_ProductoDesconocidoRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 2, "12.50"), line(missingID, 1, "1.00")},
	})
	var unknownErr *domain.UnknownProductError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, missingID, unknownErr.ProductID)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	assert.Equal(t, int64(10), f.stock(t, productA))
}

func TestCreateSale_SegundaLineaSinStockNoDescuentaPrimera(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)
	f.addProduct(productB, "Azúcar", "5.00", 1)

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 3, "12.50"), line(productB, 2, "5.00")},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.stock(t, productA))
	assert.Equal(t, int64(1), f.stock(t, productB))
}

func TestCreateSale_LineasRepetidasSeAgregan(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 5)

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 3, "12.50"), line(productA, 3, "12.50")},
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(6), stockErr.Requested)
	assert.Equal(t, int64(5), f.stock(t, productA))

	res, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 2, "12.50"), line(productA, 3, "10.00")},
	})
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.RequireFromString("55.00")))
	assert.Equal(t, int64(0), f.stock(t, productA))
	movs, err := f.store.Movements().ListByTransaction(context.Background(), res.SaleID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(-5), movs[0].Quantity)
}

func TestCreateSale_CorrelativoCreciente(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "1.00", 100)

	var prev int64
	for i := 0; i < 5; i++ {
		res, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
			Lines: []dto.CreateSaleLineRequest{line(productA, 1, "1.00")},
		})
		require.NoError(t, err)
		assert.Greater(t, res.Number, prev)
		prev = res.Number
	}
}

func TestCreateSale_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)

	var wg sync.WaitGroup
	var okCount, stockCount atomic.Int32
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
				Lines: []dto.CreateSaleLineRequest{line(productA, 6, "12.50")},
			})
			switch {
			case err == nil:
				okCount.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				stockCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), okCount.Load())
	assert.Equal(t, int32(1), stockCount.Load())
	assert.Equal(t, int64(4), f.stock(t, productA))
}

func TestCreateSale_ConcurrenciaVariasVentas(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "1.00", 5)
	f.addProduct(productB, "Azúcar", "1.00", 5)

	var wg sync.WaitGroup
	var okCount atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// orden de líneas alternado
			lines := []dto.CreateSaleLineRequest{line(productA, 1, "1.00"), line(productB, 1, "1.00")}
			if i%2 == 1 {
				lines[0], lines[1] = lines[1], lines[0]
			}
			if _, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{Lines: lines}); err == nil {
				okCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(5), okCount.Load())
	assert.Equal(t, int64(0), f.stock(t, productA))
	assert.Equal(t, int64(0), f.stock(t, productB))
}

func TestCreateSale_TimeoutEsConflictoReintentable(t *testing.T) {
	f := newFixture(t, memory.WithCommitTimeout(50*time.Millisecond))
	f.addProduct(productA, "Café", "12.50", 10)

	hold := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = f.store.RunSale(context.Background(), func(uow repository.UnitOfWork) error {
			close(started)
			<-hold
			return errors.New("abortada")
		})
	}()
	<-started
	defer close(hold)

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 1, "12.50")},
	})
	assert.ErrorIs(t, err, domain.ErrStorageConflict)
	assert.Equal(t, int64(10), f.stock(t, productA))
}

func TestCreateSale_DesbordeDeMonto(t *testing.T) {
	f := newFixture(t)
	f.addProduct(productA, "Café", "12.50", 10)

	_, err := f.uc.CreateSale(context.Background(), employeeID, dto.CreateSaleRequest{
		Lines: []dto.CreateSaleLineRequest{line(productA, 2, "999999999999.00")},
	})
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
	assert.Equal(t, int32(0), f.runner.calls.Load())
}
