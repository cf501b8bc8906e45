package repository

import "github.com/bilkro/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
//
// El pipeline de checkout nunca hace read-then-write sobre el stock: usa
// GetForUpdate (bloqueo de fila dentro de una tx) y DecrementStock (UPDATE
// condicionado a quantity >= cantidad), de modo que dos checkouts concurrentes
// sobre el mismo producto no puedan sobrevender.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
	// sentido con un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	// DecrementStock resta qty de forma atómica. Devuelve ErrInsufficientStock
	// si el stock vigente es menor que qty; el stock nunca queda negativo.
	DecrementStock(id string, qty int) error
	// IncrementStock suma qty (reposición o compensación).
	IncrementStock(id string, qty int) error
}
