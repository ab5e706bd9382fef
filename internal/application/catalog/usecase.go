// Package catalog expone el listado de caja: productos filtrables y clientes seleccionables.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
)

// clientListLimit máximo de clientes devueltos junto al catálogo.
const clientListLimit = 100

// CatalogUseCase lectura del catálogo de caja.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, clientRepo repository.ClientRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, clientRepo: clientRepo}
}

// Search filtra productos por nombre, código o precio exacto según in.Filter. Sin texto de búsqueda,
// con un filtro desconocido o con un precio no numérico se listan todos los productos.
func (uc *CatalogUseCase) Search(ctx context.Context, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	in.DefaultPage()
	f := buildFilter(in)

	products, err := uc.productRepo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clientRepo.List(ctx, clientListLimit, 0)
	if err != nil {
		return nil, err
	}

	out := &dto.CatalogResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Clients:  make([]dto.ClientResponse, 0, len(clients)),
	}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p))
	}
	for _, c := range clients {
		out.Clients = append(out.Clients, dto.ClientResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID})
	}
	return out, nil
}

func buildFilter(in dto.CatalogRequest) repository.ProductFilter {
	f := repository.ProductFilter{Limit: in.Limit, Offset: in.Offset}
	search := strings.TrimSpace(in.Search)
	if search == "" {
		return f
	}
	switch field := strings.ToLower(strings.TrimSpace(in.Filter)); field {
	case repository.ProductFieldName, repository.ProductFieldCode:
		f.Field = field
		f.Search = search
	case repository.ProductFieldPrice:
		price, err := decimal.NewFromString(search)
		if err != nil {
			return f
		}
		f.Field = field
		f.Price = &price
	}
	return f
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:    p.ID,
		Code:  p.Code,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}
