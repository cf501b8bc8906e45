package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/application/usecase"
)

// SaleHandler maneja las consultas de ventas (protegido).
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.APIResponse{data=dto.SaleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=dto.SaleListResponse}
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		}
		start = t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato esperado YYYY-MM-DD"})
		}
		// fin de día inclusivo
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	out, err := h.uc.ListByDateRange(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// Receipt godoc
// @Summary      Descargar el recibo de una venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Receipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
