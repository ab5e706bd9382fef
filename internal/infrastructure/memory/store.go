// Package memory implementa los repositorios sobre un almacén en memoria con transacciones
// serializadas. Se usa en desarrollo (STORE_DRIVER=memory) y en tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

type state struct {
	products   map[string]entity.Product
	clients    map[string]entity.Client
	employees  map[string]entity.Employee
	sales      map[string]entity.Sale
	lines      map[string][]entity.SaleLine
	movements  []entity.InventoryMovement
	lastNumber int64
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		clients:   make(map[string]entity.Client),
		employees: make(map[string]entity.Employee),
		sales:     make(map[string]entity.Sale),
		lines:     make(map[string][]entity.SaleLine),
	}
}

func (st *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(st.products)),
		clients:    make(map[string]entity.Client, len(st.clients)),
		employees:  make(map[string]entity.Employee, len(st.employees)),
		sales:      make(map[string]entity.Sale, len(st.sales)),
		lines:      make(map[string][]entity.SaleLine, len(st.lines)),
		movements:  append([]entity.InventoryMovement(nil), st.movements...),
		lastNumber: st.lastNumber,
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.clients {
		c.clients[k] = v
	}
	for k, v := range st.employees {
		c.employees[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	for k, v := range st.lines {
		c.lines[k] = append([]entity.SaleLine(nil), v...)
	}
	return c
}

// Store almacén en memoria. Las lecturas fuera de transacción ven solo estado confirmado;
// las transacciones trabajan sobre una copia privada que se publica entera al confirmar.
type Store struct {
	mu            sync.RWMutex
	cur           *state
	sem           chan struct{}
	commitTimeout time.Duration
	now           func() time.Time
}

// Option configura el Store.
type Option func(*Store)

// WithCommitTimeout acota la espera por la transacción; al vencer RunSale retorna domain.ErrStorageConflict.
func WithCommitTimeout(d time.Duration) Option {
	return func(s *Store) { s.commitTimeout = d }
}

// NewStore crea un almacén vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{cur: newState(), sem: make(chan struct{}, 1), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RunSale ejecuta fn con repositorios atados a una copia privada del estado. Solo una transacción
// corre a la vez; si fn retorna error o hace panic la copia se descarta.
func (s *Store) RunSale(ctx context.Context, fn func(uow repository.UnitOfWork) error) (err error) {
	if s.commitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.commitTimeout)
		defer cancel()
	}
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrStorageConflict, ctx.Err())
	}
	defer func() { <-s.sem }()

	s.mu.RLock()
	work := s.cur.clone()
	s.mu.RUnlock()

	if err := fn(&unitOfWork{s: s, tx: work}); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageConflict, ctx.Err())
	}

	s.mu.Lock()
	s.cur = work
	s.mu.Unlock()
	return nil
}

// Products repositorio de productos sobre estado confirmado.
func (s *Store) Products() repository.ProductRepository { return &productRepo{view{s: s}} }

// Clients repositorio de clientes.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{view{s: s}} }

// Employees repositorio de empleados.
func (s *Store) Employees() repository.EmployeeRepository { return &employeeRepo{view{s: s}} }

// Sales repositorio de ventas sobre estado confirmado.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{view{s: s}} }

// Movements repositorio del kardex sobre estado confirmado.
func (s *Store) Movements() repository.InventoryMovementRepository {
	return &movementRepo{view{s: s}}
}

// exclusive aplica fn al estado confirmado esperando a que termine la transacción en curso.
// RunSale publica su copia entera; una escritura concurrente sin el semáforo se perdería.
func (s *Store) exclusive(fn func(st *state)) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cur)
}

// AddProduct registra o reemplaza un producto.
func (s *Store) AddProduct(p entity.Product) {
	s.exclusive(func(st *state) { st.products[p.ID] = p })
}

// AddClient registra o reemplaza un cliente.
func (s *Store) AddClient(c entity.Client) {
	s.exclusive(func(st *state) { st.clients[c.ID] = c })
}

// AddEmployee registra o reemplaza un empleado.
func (s *Store) AddEmployee(e entity.Employee) {
	s.exclusive(func(st *state) { st.employees[e.ID] = e })
}

type unitOfWork struct {
	s  *Store
	tx *state
}

func (u *unitOfWork) Products() repository.ProductRepository {
	return &productRepo{view{s: u.s, tx: u.tx}}
}

func (u *unitOfWork) Sales() repository.SaleRepository {
	return &saleRepo{view{s: u.s, tx: u.tx}}
}

func (u *unitOfWork) Movements() repository.InventoryMovementRepository {
	return &movementRepo{view{s: u.s, tx: u.tx}}
}

// view resuelve sobre qué estado opera un repositorio: la copia de la transacción o el confirmado.
type view struct {
	s  *Store
	tx *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.cur)
}

// write fuera de transacción espera a la transacción en curso, copia el estado y lo publica solo si fn no falla.
func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.sem <- struct{}{}
	defer func() { <-v.s.sem }()
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	work := v.s.cur.clone()
	if err := fn(work); err != nil {
		return err
	}
	v.s.cur = work
	return nil
}

var _ repository.UnitOfWork = (*unitOfWork)(nil)
