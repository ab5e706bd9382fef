package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-ventas-api/internal/domain/sales"
)

// ValidatedSale solicitud ya validada, con IDs normalizados.
type ValidatedSale struct {
	EmployeeID string
	ClientID   *string
	Lines      []ValidatedLine
}

// ValidatedLine línea validada.
type ValidatedLine struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Validator valida la estructura y las referencias de una solicitud de venta. No escribe nada.
type Validator struct {
	clientRepo repository.ClientRepository
}

// NewValidator construye el validador.
func NewValidator(clientRepo repository.ClientRepository) *Validator {
	return &Validator{clientRepo: clientRepo}
}

// Validate verifica, en orden: identidad del empleado, líneas (no vacías y bien formadas) y existencia
// del cliente si viene informado. Solo la última comprobación consulta el almacén.
func (v *Validator) Validate(ctx context.Context, employeeID string, in dto.CreateSaleRequest) (*ValidatedSale, error) {
	empID, err := uuid.Parse(strings.TrimSpace(employeeID))
	if err != nil {
		return nil, domain.ErrUnauthenticatedEmployee
	}

	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidRequest)
	}
	lines := make([]ValidatedLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		pid, err := uuid.Parse(strings.TrimSpace(l.ProductID))
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: product_id inválido", domain.ErrInvalidRequest, i+1)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d: la cantidad debe ser mayor que cero", domain.ErrInvalidRequest, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: el precio unitario no puede ser negativo", domain.ErrInvalidRequest, i+1)
		}
		// unit_price se guarda con la escala de la moneda; una fracción de centavo cambiaría el total persistido
		if !l.UnitPrice.Equal(l.UnitPrice.Round(domainsales.CurrencyScale)) {
			return nil, fmt.Errorf("%w: línea %d: el precio unitario admite como máximo %d decimales",
				domain.ErrInvalidRequest, i+1, domainsales.CurrencyScale)
		}
		lines = append(lines, ValidatedLine{ProductID: pid.String(), Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}

	out := &ValidatedSale{EmployeeID: empID.String(), Lines: lines}
	if in.ClientID == nil || strings.TrimSpace(*in.ClientID) == "" {
		return out, nil
	}
	cid, err := uuid.Parse(strings.TrimSpace(*in.ClientID))
	if err != nil {
		return nil, fmt.Errorf("%w: client_id inválido", domain.ErrInvalidRequest)
	}
	client, err := v.clientRepo.GetByID(ctx, cid.String())
	if err != nil {
		return nil, fmt.Errorf("validar cliente: %w", err)
	}
	if client == nil {
		return nil, domain.ErrUnknownClient
	}
	clientID := client.ID
	out.ClientID = &clientID
	return out, nil
}
