package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/application/reports"
	"github.com/marjoc/farmacia-api/internal/domain/report"
)

// ReportHandler resumen del período y exportación CSV/PDF (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas y estoque del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "weekly | monthly"  default(weekly)
// @Success      200     {object}  dto.ReportSummaryResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	period := report.Period(c.Query("period", string(report.PeriodWeekly)))
	if !period.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser weekly o monthly"})
	}
	out, err := h.uc.GetSummary(c.UserContext(), period, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el reporte del período
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        period  query  string  false  "weekly | monthly"  default(weekly)
// @Param        format  query  string  false  "csv | pdf"         default(csv)
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	period := report.Period(c.Query("period", string(report.PeriodWeekly)))
	if !period.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser weekly o monthly"})
	}
	format := c.Query("format", reports.FormatCSV)
	if format != reports.FormatCSV && format != reports.FormatPDF {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "format debe ser csv o pdf"})
	}
	data, filename, contentType, err := h.uc.Export(c.UserContext(), period, format, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
