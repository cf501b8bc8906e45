package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/domain/entity"
)

// CustomerInfoRequest datos de contacto del cliente en el checkout.
type CustomerInfoRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutRequest entrada del checkout.
type CheckoutRequest struct {
	PaymentMethod string              `json:"paymentMethod" validate:"required"`
	CustomerInfo  CustomerInfoRequest `json:"customerInfo"`
}

// CheckoutItemResponse desglose de una línea vendida.
type CheckoutItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

// CheckoutResponse resultado de un checkout exitoso.
// EmailSent en false indica que la confirmación no pudo enviarse; la venta
// queda firme de todos modos.
type CheckoutResponse struct {
	SaleID        string                          `json:"saleId"`
	ReportID      string                          `json:"reportId"`
	InvoiceNumber string                          `json:"invoiceNumber"`
	Items         []CheckoutItemResponse          `json:"items"`
	ItemCount     int                             `json:"itemCount"`
	Subtotal      decimal.Decimal                 `json:"subtotal"`
	Discount      decimal.Decimal                 `json:"discount"`
	Total         decimal.Decimal                 `json:"total"`
	TotalProfit   decimal.Decimal                 `json:"totalProfit"`
	Categories    map[string]entity.CategoryStats `json:"categories"`
	EmailSent     bool                            `json:"emailSent"`
}
