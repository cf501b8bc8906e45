package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del carrito. Un usuario tiene a lo sumo un carrito "active"
// (constraint único parcial en la tabla carts). "converted" es terminal.
const (
	CartStatusActive    = "active"
	CartStatusConverted = "converted"
)

// CartItem es una línea del carrito. Price y Name son snapshots del producto
// al momento de agregarlo; el stock vigente se verifica contra products.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Name      string
	AddedAt   time.Time
}

// Cart agrupa las líneas de compra de un usuario. Los totales son derivados,
// nunca se persisten.
type Cart struct {
	ID         string
	UserID     string
	Status     string
	Items      []CartItem
	Discount   decimal.Decimal
	Note       string
	CouponCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ItemCount suma las cantidades de todas las líneas.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal suma precio×cantidad por línea.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Total = Subtotal - Discount.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Sub(c.Discount)
}

// ItemByID busca una línea por su ID; nil si no existe.
func (c *Cart) ItemByID(itemID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// ItemByProduct busca una línea por producto; nil si no existe.
func (c *Cart) ItemByProduct(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItemAt elimina la línea en la posición i (sin validar rango).
func (c *Cart) RemoveItemAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
