package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ventas-api/internal/application/dto"
	"github.com/jhoicas/pos-ventas-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y cuerpo de error.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var stockErr *domain.InsufficientStockError
	var unknownProduct *domain.UnknownProductError
	switch {
	case errors.As(err, &stockErr):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Details: map[string]any{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			},
		}
	case errors.As(err, &unknownProduct):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "UNKNOWN_PRODUCT",
			Message: "producto no encontrado",
			Details: map[string]any{"product_id": unknownProduct.ProductID},
		}
	case errors.Is(err, domain.ErrInvalidRequest):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_REQUEST", Message: err.Error()}
	case errors.Is(err, domain.ErrUnknownClient):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "UNKNOWN_CLIENT", Message: "cliente no encontrado"}
	case errors.Is(err, domain.ErrUnauthenticatedEmployee):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHENTICATED_EMPLOYEE", Message: "empleado no autenticado"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva o suspendida"}
	case errors.Is(err, domain.ErrStorageConflict):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:      "STORAGE_CONFLICT",
			Message:   "conflicto de concurrencia, la venta no se registró; puede reintentarse",
			Retryable: true,
		}
	case errors.Is(err, domain.ErrSaleNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "SALE_NOT_FOUND", Message: "venta no encontrada"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// writeError responde con el error mapeado. Los 500 no exponen el detalle; queda en el log de la request.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(body)
}
