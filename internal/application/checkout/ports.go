package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn retorna error se hace rollback completo:
// ningún decremento de stock queda sin su Report correspondiente.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
		saleRepo repository.SaleRepository,
		reportRepo repository.ReportRepository,
	) error) error
}

// OrderLine línea del pedido para la confirmación por correo.
type OrderLine struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// OrderDetails datos del pedido que viajan en el correo de confirmación.
type OrderDetails struct {
	TransactionID string // ID del reporte, referencia de la transacción
	InvoiceNumber string
	Date          time.Time
	Items         []OrderLine
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
}

// Notifier colaborador de notificaciones post-commit. Best effort: un error
// aquí jamás revierte ni reporta como fallido un checkout ya confirmado.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, email, customerName string, details OrderDetails) error
}
