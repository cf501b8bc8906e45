package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest entrada para agregar un producto al carrito.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// UpdateItemRequest entrada para cambiar la cantidad de una línea.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// CartItemResponse línea del carrito en respuestas.
type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse proyección del carrito con sus totales derivados.
type CartResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId,omitempty"`
	Status     string             `json:"status"`
	Items      []CartItemResponse `json:"items"`
	ItemCount  int                `json:"itemCount"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Discount   decimal.Decimal    `json:"discount"`
	Total      decimal.Decimal    `json:"total"`
	Note       string             `json:"note,omitempty"`
	CouponCode string             `json:"couponCode,omitempty"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// CartListResponse listado paginado de carritos (solo admin).
type CartListResponse struct {
	Items []CartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
