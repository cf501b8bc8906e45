package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bilkro/pos-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales derivados del carrito
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: carrito vacío → todos los derivados en cero.
func TestCart_TotalesCarritoVacio(t *testing.T) {
	cart := &entity.Cart{Discount: decimal.Zero}

	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.Subtotal().IsZero(), "subtotal de carrito vacío debe ser 0")
	assert.True(t, cart.Total().IsZero(), "total de carrito vacío debe ser 0")
}

// Caso 2: subtotal = Σ precio×cantidad, itemCount = Σ cantidad.
func TestCart_SubtotalYConteo(t *testing.T) {
	cart := &entity.Cart{
		Discount: decimal.Zero,
		Items: []entity.CartItem{
			{ProductID: "p1", Quantity: 2, Price: dec("10.00")},
			{ProductID: "p2", Quantity: 3, Price: dec("5.50")},
		},
	}

	assert.Equal(t, 5, cart.ItemCount())
	assert.True(t, cart.Subtotal().Equal(dec("36.50")),
		"subtotal esperado 36.50, fue %s", cart.Subtotal())
}

// Caso 3: total = subtotal - descuento.
func TestCart_TotalConDescuento(t *testing.T) {
	cart := &entity.Cart{
		Discount: dec("6.50"),
		Items: []entity.CartItem{
			{ProductID: "p1", Quantity: 2, Price: dec("10.00")},
			{ProductID: "p2", Quantity: 3, Price: dec("5.50")},
		},
	}

	assert.True(t, cart.Total().Equal(dec("30.00")),
		"total esperado 30.00, fue %s", cart.Total())
}

// Caso 4: búsqueda de líneas por ID y por producto.
func TestCart_BusquedaDeLineas(t *testing.T) {
	cart := &entity.Cart{
		Items: []entity.CartItem{
			{ID: "i1", ProductID: "p1", Quantity: 1, Price: dec("1")},
			{ID: "i2", ProductID: "p2", Quantity: 1, Price: dec("2")},
		},
	}

	assert.NotNil(t, cart.ItemByID("i2"))
	assert.Nil(t, cart.ItemByID("i9"))
	assert.NotNil(t, cart.ItemByProduct("p1"))
	assert.Nil(t, cart.ItemByProduct("p9"))
}

// Caso 5: RemoveItemAt elimina preservando el orden del resto.
func TestCart_RemoveItemAt(t *testing.T) {
	cart := &entity.Cart{
		Items: []entity.CartItem{
			{ID: "i1", Quantity: 1, Price: dec("1")},
			{ID: "i2", Quantity: 1, Price: dec("2")},
			{ID: "i3", Quantity: 1, Price: dec("3")},
		},
	}

	cart.RemoveItemAt(1)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "i1", cart.Items[0].ID)
	assert.Equal(t, "i3", cart.Items[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregado por categoría del reporte
// ──────────────────────────────────────────────────────────────────────────────

// MergeCategory acumula count/revenue/profit por clave.
func TestReport_MergeCategory(t *testing.T) {
	r := &entity.Report{}

	r.MergeCategory("bebidas", 2, dec("20"), dec("8"))
	r.MergeCategory("bebidas", 1, dec("10"), dec("4"))
	r.MergeCategory("snacks", 5, dec("25"), dec("10"))

	assert.Len(t, r.Categories, 2)
	bebidas := r.Categories["bebidas"]
	assert.Equal(t, 3, bebidas.Count)
	assert.True(t, bebidas.Revenue.Equal(dec("30")))
	assert.True(t, bebidas.Profit.Equal(dec("12")))
	assert.Equal(t, []string{"bebidas", "snacks"}, r.CategoryNames(),
		"las categorías deben salir en orden alfabético")
}

// Métodos de pago: la lista aceptada y un rechazo.
func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"cash", "credit", "debit", "bank_transfer", "online", "other"} {
		assert.True(t, entity.ValidPaymentMethod(m), "método %s debe ser válido", m)
	}
	assert.False(t, entity.ValidPaymentMethod("bitcoin"))
	assert.False(t, entity.ValidPaymentMethod(""))
}
