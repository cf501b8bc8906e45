package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bilkro/pos-api/internal/application/cart"
	"github.com/bilkro/pos-api/internal/application/checkout"
	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain/entity"
)

// CartHandler maneja las peticiones HTTP del carrito y el checkout (protegido).
type CartHandler struct {
	cartUC     *cart.UseCase
	checkoutUC *checkout.UseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(cartUC *cart.UseCase, checkoutUC *checkout.UseCase) *CartHandler {
	return &CartHandler{cartUC: cartUC, checkoutUC: checkoutUC}
}

// Get godoc
// @Summary      Obtener el carrito activo (lo crea si no existe)
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.cartUC.GetCart(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// AddItem godoc
// @Summary      Agregar un producto al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId y quantity (mínimo 1) son requeridos"})
	}
	out, err := h.cartUC.AddItem(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("producto agregado al carrito", out))
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateItemRequest  true  "Nueva cantidad"
// @Success      200     {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("itemId")
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cartUC.UpdateItemQuantity(c.Context(), GetUserID(c), itemID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("cantidad actualizada", out))
}

// RemoveItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.APIResponse{data=dto.CartResponse}
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.cartUC.RemoveItem(c.Context(), GetUserID(c), c.Params("itemId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("línea eliminada", out))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.CartResponse}
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.cartUC.Clear(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("carrito vaciado", out))
}

// Checkout godoc
// @Summary      Convertir el carrito activo en una venta
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Método de pago y datos del cliente"
// @Success      200   {object}  dto.APIResponse{data=dto.CheckoutResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "método de pago inválido"})
	}
	out, err := h.checkoutUC.Checkout(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	msg := "venta registrada"
	if out.EmailSent {
		msg = "venta registrada y confirmación enviada"
	}
	return c.JSON(dto.OK(msg, out))
}

// ListCarts godoc
// @Summary      Listar carritos por estado (solo admin)
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"  default(active)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.APIResponse{data=dto.CartListResponse}
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/admin/carts [get]
func (h *CartHandler) ListCarts(c *fiber.Ctx) error {
	status := c.Query("status", entity.CartStatusActive)
	if status != entity.CartStatusActive && status != entity.CartStatusConverted {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser active o converted"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.cartUC.ListCarts(c.Context(), status, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("", out))
}
