package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// QueryUseCase lectura de ventas confirmadas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// GetSale retorna la venta con sus líneas (cargadas por GetByID) o domain.ErrSaleNotFound.
func (uc *QueryUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(saleID))
	if err != nil {
		return nil, domain.ErrSaleNotFound
	}
	sale, err := uc.saleRepo.GetByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("leer venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	out := &dto.SaleResponse{
		ID:         sale.ID,
		Number:     sale.Number,
		Date:       sale.Date,
		ClientID:   sale.ClientID,
		EmployeeID: sale.EmployeeID,
		Total:      sale.Total,
		Lines:      make([]dto.SaleLineResponse, 0, len(sale.Lines)),
	}
	for _, l := range sale.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out, nil
}
