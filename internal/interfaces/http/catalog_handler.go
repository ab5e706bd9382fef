package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas-api/internal/application/catalog"
	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
)

// CatalogHandler listado de caja.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Search godoc
// @Summary      Catálogo de caja
// @Tags         sales
// @Produce      json
// @Param        search  query  string  false  "texto a buscar"
// @Param        filter  query  string  false  "nombre | codigo | precio"
// @Param        limit   query  int     false  "máximo de productos"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/sales/catalog [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REQUEST", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
