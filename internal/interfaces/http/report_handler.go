package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/application/reporting"
)

// ReportHandler maneja las consultas de reportes (protegido, solo admin).
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseDateRange lee startDate/endDate (YYYY-MM-DD) de la query. Campos
// ausentes quedan en cero y el caso de uso aplica los defaults.
func parseDateRange(c *fiber.Ctx) (reporting.DateRange, error) {
	var rng reporting.DateRange
	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return rng, err
		}
		rng.Start = t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return rng, err
		}
		rng.End = t
	}
	return rng, nil
}

// SalesByPeriod godoc
// @Summary      Ventas agrupadas por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period     query  string  false  "daily|weekly|monthly|yearly"  default(daily)
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=[]dto.PeriodSalesDTO}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesByPeriod(c *fiber.Ctx) error {
	rng, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	out, err := h.uc.SalesByPeriod(c.Context(), rng, c.Query("period", "daily"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// Products godoc
// @Summary      Ventas acumuladas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        sortBy     query  string  false  "sales|quantity|profit"  default(sales)
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductReportDTO}
// @Router       /api/reports/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	rng, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	out, err := h.uc.ProductReports(c.Context(), rng, limit, c.Query("sortBy", "sales"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// Categories godoc
// @Summary      Ventas acumuladas por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=[]dto.CategoryReportDTO}
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	rng, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	out, err := h.uc.CategoryReports(c.Context(), rng, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// PaymentMethods godoc
// @Summary      Ventas acumuladas por método de pago
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=[]dto.PaymentMethodReportDTO}
// @Router       /api/reports/payment-methods [get]
func (h *ReportHandler) PaymentMethods(c *fiber.Ctx) error {
	rng, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
	}
	out, err := h.uc.PaymentMethodReports(c.Context(), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// GetByID godoc
// @Summary      Obtener un reporte de checkout por ID
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.APIResponse{data=dto.ReportResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}
