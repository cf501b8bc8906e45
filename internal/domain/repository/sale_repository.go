package repository

import (
	"time"

	"github.com/bilkro/pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	// Create persiste la venta con sus líneas. El InvoiceNumber debe venir ya
	// asignado (NextInvoiceNumber dentro de la misma transacción).
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByDateRange(start, end time.Time) ([]*entity.Sale, error)
	// NextInvoiceNumber asigna el siguiente consecutivo INV-YYYYMMDD-NNNN del
	// día. Debe llamarse dentro de una transacción: serializa contra otras
	// asignaciones concurrentes para que la secuencia diaria sea monótona.
	NextInvoiceNumber(now time.Time) (string, error)
}
