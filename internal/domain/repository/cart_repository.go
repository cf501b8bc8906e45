package repository

import "github.com/bilkro/pos-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart y sus líneas.
// El carrito es de un solo dueño: la serialización de las peticiones del
// propio usuario es suficiente, no requiere bloqueo entre requests.
type CartRepository interface {
	Create(cart *entity.Cart) error
	// GetActiveByUser devuelve el carrito "active" del usuario con sus líneas
	// en orden de inserción; nil si no existe.
	GetActiveByUser(userID string) (*entity.Cart, error)
	GetByID(id string) (*entity.Cart, error)
	// SaveItems reemplaza las líneas persistidas con las del carrito en memoria
	// y actualiza note/coupon/discount.
	SaveItems(cart *entity.Cart) error
	// SetStatus transiciona el estado del carrito (active → converted).
	SetStatus(cartID, status string) error
	ListByStatus(status string, limit, offset int) ([]*entity.Cart, error)
	CountByStatus(status string) (int, error)
}
