package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas-api/internal/application/auth"
	"github.com/jhoicas/pos-ventas-api/internal/application/catalog"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CreateSale *sales.CreateSaleUseCase
	SaleQuery  *sales.QueryUseCase
	Invoice    *sales.InvoiceUseCase
	CatalogUC  *catalog.CatalogUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Ventas (requieren Bearer Token de un empleado)
	salesGroup := api.Group("/sales",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin, entity.RoleVendedor),
	)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery, deps.Invoice)
	// /catalog antes de /:id
	salesGroup.Get("/catalog", catalogHandler.Search)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/invoice", saleHandler.Invoice)
}
