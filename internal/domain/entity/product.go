package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario del punto de venta.
// Quantity es el stock disponible; nunca puede ser negativo (lo garantiza el
// decremento condicionado del repositorio, no el código que llama).
type Product struct {
	ID           string
	SKU          string // código externo del producto (escaneable)
	Name         string
	Description  string
	Category     string
	Unit         string          // unidad de medida: pcs, kg, lt...
	BuyingPrice  decimal.Decimal // costo de compra unitario
	SellingPrice decimal.Decimal // precio de venta unitario
	Quantity     int
	ReorderPoint int // umbral de reposición
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el producto está en o debajo de su umbral de reposición.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.ReorderPoint
}
