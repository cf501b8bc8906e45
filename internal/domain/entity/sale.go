package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en el POS.
const (
	PaymentCash         = "cash"
	PaymentCredit       = "credit"
	PaymentDebit        = "debit"
	PaymentBankTransfer = "bank_transfer"
	PaymentOnline       = "online"
	PaymentOther        = "other"
)

// ValidPaymentMethod verifica el método de pago contra la lista aceptada.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentBankTransfer, PaymentOnline, PaymentOther:
		return true
	}
	return false
}

// Estados de una venta. El flujo de reembolsos está fuera del core.
const (
	SaleStatusCompleted = "completed"
	SaleStatusRefunded  = "refunded"
)

// SaleItem es el snapshot de una línea del carrito al momento del checkout.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Name      string
	SKU       string
	Unit      string
	Quantity  int
	Price     decimal.Decimal
}

// CustomerInfo datos de contacto del cliente para la venta (todos opcionales).
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Sale es el registro durable de una transacción de checkout. Inmutable
// después de creada, salvo transiciones de estado de reembolso.
// InvoiceNumber tiene la forma INV-YYYYMMDD-NNNN; la secuencia NNNN reinicia
// cada día y es monótona dentro del día.
type Sale struct {
	ID            string
	UserID        string
	InvoiceNumber string
	Items         []SaleItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Customer      CustomerInfo
	Note          string
	CouponCode    string
	Status        string
	CreatedAt     time.Time
}

// ItemCount suma las cantidades vendidas.
func (s *Sale) ItemCount() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}
