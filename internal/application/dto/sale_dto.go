package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Unit      string          `json:"unit"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleResponse proyección de una venta completada.
type SaleResponse struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoiceNumber"`
	UserID        string              `json:"userId"`
	Items         []SaleItemResponse  `json:"items"`
	ItemCount     int                 `json:"itemCount"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"paymentMethod"`
	CustomerInfo  CustomerInfoRequest `json:"customerInfo"`
	Note          string              `json:"note,omitempty"`
	CouponCode    string              `json:"couponCode,omitempty"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// SaleListResponse listado de ventas por rango de fechas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
