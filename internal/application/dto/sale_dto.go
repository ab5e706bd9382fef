package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// ClientID nulo o vacío = Consumidor Final.
type CreateSaleRequest struct {
	ClientID *string                 `json:"client_id"`
	Lines    []CreateSaleLineRequest `json:"lines"`
}

// CreateSaleLineRequest línea de venta (producto, cantidad, precio unitario capturado en caja).
type CreateSaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleResponse respuesta de una venta confirmada.
type CreateSaleResponse struct {
	SaleID string          `json:"sale_id"`
	Number int64           `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// SaleResponse venta con detalle para GET /api/sales/:id.
type SaleResponse struct {
	ID         string             `json:"id"`
	Number     int64              `json:"number"`
	Date       time.Time          `json:"date"`
	ClientID   *string            `json:"client_id"`
	EmployeeID string             `json:"employee_id"`
	Total      decimal.Decimal    `json:"total"`
	Lines      []SaleLineResponse `json:"lines"`
}

// SaleLineResponse línea de venta en la respuesta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
