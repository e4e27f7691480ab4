package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/application/sales"
)

// SaleHandler historial de ventas (protegido, solo lectura).
type SaleHandler struct {
	uc *sales.ListSalesUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.ListSalesUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
