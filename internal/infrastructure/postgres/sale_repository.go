package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y asigna el correlativo desde la secuencia de sales.number.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, client_id, employee_id, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING number`
	err := r.q.QueryRow(ctx, query,
		sale.ID, sale.Date, sale.ClientID, sale.EmployeeID, sale.Total, sale.CreatedAt,
	).Scan(&sale.Number)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sale already exists: %w", err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la venta. El orden de inserción es el orden de lectura.
func (r *SaleRepo) CreateLine(ctx context.Context, line *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.SaleID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, number, date, client_id, employee_id, total, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Number, &s.Date, &s.ClientID, &s.EmployeeID, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	lines, err := r.GetLinesBySaleID(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Lines = lines
	return &s, nil
}

// GetLinesBySaleID lista las líneas de una venta en orden de captura.
func (r *SaleRepo) GetLinesBySaleID(ctx context.Context, saleID string) ([]entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var list []entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetSnapshot lee venta, cliente, empleado y líneas con nombre de producto en una sola consulta.
// Cliente o empleado sin fila quedan vacíos; el armado de la factura aplica los textos por defecto.
func (r *SaleRepo) GetSnapshot(ctx context.Context, id string) (*entity.SaleSnapshot, error) {
	query := `
		SELECT s.id, s.number, s.date, s.total,
		       c.name, c.tax_id, e.name,
		       l.quantity, l.unit_price, l.subtotal, p.name
		FROM sales s
		LEFT JOIN clients c ON c.id = s.client_id
		LEFT JOIN employees e ON e.id = s.employee_id
		LEFT JOIN sale_lines l ON l.sale_id = s.id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE s.id = $1
		ORDER BY l.line_no`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get sale snapshot: %w", err)
	}
	defer rows.Close()

	var snap *entity.SaleSnapshot
	for rows.Next() {
		var (
			saleID                           string
			number                           int64
			date                             time.Time
			total                            decimal.Decimal
			clientName, clientTaxID, empName *string
			qty                              *int64
			unitPrice, subtotal              *decimal.Decimal
			productName                      *string
		)
		if err := rows.Scan(&saleID, &number, &date, &total,
			&clientName, &clientTaxID, &empName,
			&qty, &unitPrice, &subtotal, &productName); err != nil {
			return nil, fmt.Errorf("scan sale snapshot: %w", err)
		}
		if snap == nil {
			snap = &entity.SaleSnapshot{SaleID: saleID, Number: number, Date: date, Total: total}
			if clientName != nil {
				snap.Client = &entity.ClientSnapshot{Name: *clientName, TaxID: deref(clientTaxID)}
			}
			snap.EmployeeName = deref(empName)
		}
		if qty == nil {
			continue
		}
		line := entity.SnapshotLine{ProductName: deref(productName), Quantity: *qty}
		if unitPrice != nil {
			line.UnitPrice = *unitPrice
		}
		if subtotal != nil {
			line.Subtotal = *subtotal
		}
		snap.Lines = append(snap.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get sale snapshot: %w", err)
	}
	return snap, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
