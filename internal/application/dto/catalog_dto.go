package dto

import "github.com/shopspring/decimal"

// CatalogRequest query de GET /api/sales/catalog?search=&filter=nombre|codigo|precio.
type CatalogRequest struct {
	Search string `query:"search"`
	Filter string `query:"filter"`
	PageRequest
}

// ProductResponse producto en el listado de caja.
type ProductResponse struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// ClientResponse cliente seleccionable en caja.
type ClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// CatalogResponse productos filtrados y clientes disponibles.
type CatalogResponse struct {
	Products []ProductResponse `json:"products"`
	Clients  []ClientResponse  `json:"clients"`
}
