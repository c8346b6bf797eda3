package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/reporting"
)

// ReportHandler maneja los reportes de negocio (protegido).
type ReportHandler struct {
	uc *reporting.ProfitReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reporting.ProfitReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Profit godoc
// @Summary      Reporte de utilidad de un periodo
// @Tags         reports
// @Produce      json
// @Param        from  query  string  true  "fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  true  "fecha final (YYYY-MM-DD)"
// @Success      200   {object}  dto.ProfitReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from requerido (YYYY-MM-DD)"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to requerido (YYYY-MM-DD)"})
	}
	if to.Before(from) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser mayor o igual a from"})
	}
	report, err := h.uc.GetReport(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}
