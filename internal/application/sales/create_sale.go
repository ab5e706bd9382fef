// Package sales contiene los casos de uso de ventas: confirmación atómica, consulta y factura.
package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas-api/internal/domain/sales"
)

// CreateSaleUseCase confirma una venta: cabecera, líneas y descuento de inventario en una sola transacción.
// Es el único punto de entrada que modifica ventas.
type CreateSaleUseCase struct {
	validator *Validator
	txRunner  SalesTxRunner
	ledger    *inventory.Ledger
	log       zerolog.Logger
	now       func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(validator *Validator, txRunner SalesTxRunner, ledger *inventory.Ledger, log zerolog.Logger) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		validator: validator,
		txRunner:  txRunner,
		ledger:    ledger,
		log:       log.With().Str("component", "sale_ledger").Logger(),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CreateSaleUseCase) WithClock(now func() time.Time) *CreateSaleUseCase {
	uc.now = now
	return uc
}

// CreateSale valida la solicitud (sin tocar el almacén salvo para verificar el cliente), calcula
// totales y ejecuta la unidad atómica. employeeID llega resuelto desde el proveedor de identidad.
//
// Retorna:
//   - domain.ErrUnauthenticatedEmployee, domain.ErrInvalidRequest, domain.ErrUnknownClient antes de la transacción.
//   - *domain.UnknownProductError, *domain.InsufficientStockError, domain.ErrStorageConflict con rollback completo.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, employeeID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	req, err := uc.validator.Validate(ctx, employeeID, in)
	if err != nil {
		return nil, err
	}

	amounts := make([]domainsales.LineAmount, len(req.Lines))
	demands := make([]inventory.Demand, len(req.Lines))
	for i, l := range req.Lines {
		amounts[i] = domainsales.LineAmount{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
		demands[i] = inventory.Demand{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	totals, err := domainsales.CalculateTotals(amounts)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		Date:       now,
		ClientID:   req.ClientID,
		EmployeeID: req.EmployeeID,
		Total:      totals.Total,
		Lines:      make([]entity.SaleLine, len(req.Lines)),
		CreatedAt:  now,
	}
	for i, l := range req.Lines {
		sale.Lines[i] = entity.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  totals.Subtotals[i],
		}
	}
	ref := inventory.MovementRef{TransactionID: sale.ID, EmployeeID: req.EmployeeID, Date: now}

	err = uc.txRunner.RunSale(ctx, func(uow repository.UnitOfWork) error {
		// 1) Inventario: bloqueo, verificación y descuento. Si falla, rollback de toda la unidad.
		if err := uc.ledger.ReserveAndDecrement(ctx, uow, ref, demands); err != nil {
			return err
		}
		// 2) Cabecera (asigna el correlativo) y líneas
		if err := uow.Sales().Create(ctx, sale); err != nil {
			return err
		}
		for i := range sale.Lines {
			if err := uow.Sales().CreateLine(ctx, &sale.Lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logFailure(req, err)
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Int64("number", sale.Number).
		Str("employee_id", sale.EmployeeID).
		Str("total", sale.Total.StringFixed(2)).
		Int("lines", len(sale.Lines)).
		Msg("venta confirmada")

	return &dto.CreateSaleResponse{SaleID: sale.ID, Number: sale.Number, Total: sale.Total}, nil
}

func (uc *CreateSaleUseCase) logFailure(req *ValidatedSale, err error) {
	ev := uc.log.Warn()
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		ev = ev.Str("product_id", stockErr.ProductID).Int64("requested", stockErr.Requested).Int64("available", stockErr.Available)
	case errors.Is(err, domain.ErrUnknownProduct), errors.Is(err, domain.ErrStorageConflict):
	default:
		ev = uc.log.Error()
	}
	ev.Err(err).Str("employee_id", req.EmployeeID).Int("lines", len(req.Lines)).Msg("venta no confirmada, rollback")
}
