package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.ClientRepository            = (*clientRepo)(nil)
	_ repository.EmployeeRepository          = (*employeeRepo)(nil)
	_ repository.SaleRepository              = (*saleRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
)

type productRepo struct{ view }

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *productRepo) LockForUpdate(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Product, len(ids))
	r.read(func(st *state) {
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				out[id] = &p
			}
		}
	})
	return out, nil
}

func (r *productRepo) DecrementStock(ctx context.Context, id string, quantity int64) (int64, error) {
	var after int64
	err := r.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return &domain.UnknownProductError{ProductID: id}
		}
		if p.Stock < quantity {
			return &domain.InsufficientStockError{ProductID: id, Requested: quantity, Available: p.Stock}
		}
		p.Stock -= quantity
		p.UpdatedAt = r.s.now().UTC()
		st.products[id] = p
		after = p.Stock
		return nil
	})
	return after, err
}

func (r *productRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	term := strings.ToLower(strings.TrimSpace(f.Search))
	r.read(func(st *state) {
		for _, p := range st.products {
			if matchProduct(p, f.Field, term, f) {
				p := p
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Limit, f.Offset), nil
}

func matchProduct(p entity.Product, field, term string, f repository.ProductFilter) bool {
	switch field {
	case repository.ProductFieldName:
		return term == "" || strings.Contains(strings.ToLower(p.Name), term)
	case repository.ProductFieldCode:
		return term == "" || strings.Contains(strings.ToLower(p.Code), term)
	case repository.ProductFieldPrice:
		return f.Price == nil || p.Price.Equal(*f.Price)
	default:
		return true
	}
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type clientRepo struct{ view }

func (r *clientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	r.read(func(st *state) {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *clientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	r.read(func(st *state) {
		for _, c := range st.clients {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

type employeeRepo struct{ view }

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	r.read(func(st *state) {
		if e, ok := st.employees[id]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	var out *entity.Employee
	email = strings.ToLower(strings.TrimSpace(email))
	r.read(func(st *state) {
		for _, e := range st.employees {
			if strings.ToLower(e.Email) == email {
				e := e
				out = &e
				return
			}
		}
	})
	return out, nil
}

type saleRepo struct{ view }

func (r *saleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.write(func(st *state) error {
		st.lastNumber++
		sale.Number = st.lastNumber
		h := *sale
		h.Lines = nil
		st.sales[sale.ID] = h
		return nil
	})
}

func (r *saleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	return r.write(func(st *state) error {
		if _, ok := st.sales[line.SaleID]; !ok {
			return domain.ErrSaleNotFound
		}
		st.lines[line.SaleID] = append(st.lines[line.SaleID], *line)
		return nil
	})
}

func (r *saleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.read(func(st *state) {
		if s, ok := st.sales[id]; ok {
			s.Lines = append([]entity.SaleLine(nil), st.lines[id]...)
			out = &s
		}
	})
	return out, nil
}

func (r *saleRepo) GetLinesBySaleID(ctx context.Context, saleID string) ([]entity.SaleLine, error) {
	var out []entity.SaleLine
	r.read(func(st *state) {
		out = append([]entity.SaleLine(nil), st.lines[saleID]...)
	})
	return out, nil
}

func (r *saleRepo) GetSnapshot(ctx context.Context, id string) (*entity.SaleSnapshot, error) {
	var out *entity.SaleSnapshot
	r.read(func(st *state) {
		s, ok := st.sales[id]
		if !ok {
			return
		}
		snap := &entity.SaleSnapshot{SaleID: s.ID, Number: s.Number, Date: s.Date, Total: s.Total}
		if s.ClientID != nil {
			if c, ok := st.clients[*s.ClientID]; ok {
				snap.Client = &entity.ClientSnapshot{Name: c.Name, TaxID: c.TaxID}
			}
		}
		if e, ok := st.employees[s.EmployeeID]; ok {
			snap.EmployeeName = e.Name
		}
		for _, l := range st.lines[id] {
			snap.Lines = append(snap.Lines, entity.SnapshotLine{
				ProductName: st.products[l.ProductID].Name,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Subtotal:    l.Subtotal,
			})
		}
		out = snap
	})
	return out, nil
}

type movementRepo struct{ view }

func (r *movementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	return r.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *movementRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	r.read(func(st *state) {
		for _, m := range st.movements {
			if m.TransactionID == transactionID {
				m := m
				out = append(out, &m)
			}
		}
	})
	return out, nil
}
