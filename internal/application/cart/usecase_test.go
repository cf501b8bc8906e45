package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilkro/pos-api/internal/application/cart"
	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCartRepo struct {
	carts map[string]*entity.Cart // por ID
	saves int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*entity.Cart)}
}

func (f *fakeCartRepo) Create(c *entity.Cart) error {
	cp := *c
	f.carts[c.ID] = &cp
	return nil
}

func (f *fakeCartRepo) GetActiveByUser(userID string) (*entity.Cart, error) {
	for _, c := range f.carts {
		if c.UserID == userID && c.Status == entity.CartStatusActive {
			cp := *c
			cp.Items = append([]entity.CartItem(nil), c.Items...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) GetByID(id string) (*entity.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCartRepo) SaveItems(c *entity.Cart) error {
	stored, ok := f.carts[c.ID]
	if !ok {
		return domain.ErrCartNotFound
	}
	stored.Items = append([]entity.CartItem(nil), c.Items...)
	stored.Discount = c.Discount
	stored.Note = c.Note
	stored.CouponCode = c.CouponCode
	stored.UpdatedAt = c.UpdatedAt
	f.saves++
	return nil
}

func (f *fakeCartRepo) SetStatus(cartID, status string) error {
	c, ok := f.carts[cartID]
	if !ok {
		return domain.ErrCartNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCartRepo) ListByStatus(status string, limit, offset int) ([]*entity.Cart, error) {
	var out []*entity.Cart
	for _, c := range f.carts {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) CountByStatus(status string) (int, error) {
	list, _ := f.ListByStatus(status, 0, 0)
	return len(list), nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error               { return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(id string) error                   { delete(f.products, id); return nil }
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.GetByID(id)
}
func (f *fakeProductRepo) DecrementStock(id string, qty int) error {
	p, ok := f.products[id]
	if !ok || p.Quantity < qty {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	return nil
}
func (f *fakeProductRepo) IncrementStock(id string, qty int) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity += qty
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func producto(id, name string, qty int, price string) *entity.Product {
	return &entity.Product{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         name,
		Category:     "general",
		Quantity:     qty,
		BuyingPrice:  dec("1.00"),
		SellingPrice: dec(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GetCart / creación lazy
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el primer GetCart crea un carrito activo vacío.
func TestGetCart_CreaCarritoSiNoExiste(t *testing.T) {
	cartRepo := newFakeCartRepo()
	uc := cart.NewUseCase(cartRepo, newFakeProductRepo(), logger.Nop())

	out, err := uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.CartStatusActive, out.Status)
	assert.Empty(t, out.Items)
	assert.Len(t, cartRepo.carts, 1, "debe haberse persistido el carrito nuevo")
}

// Caso 2: llamadas posteriores devuelven el mismo carrito, no uno nuevo.
func TestGetCart_ReusaElCarritoActivo(t *testing.T) {
	cartRepo := newFakeCartRepo()
	uc := cart.NewUseCase(cartRepo, newFakeProductRepo(), logger.Nop())

	first, err := uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, cartRepo.carts, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddItem
// ──────────────────────────────────────────────────────────────────────────────

// Agregar el mismo producto dos veces suma cantidades en una sola línea.
func TestAddItem_FusionaLineasDelMismoProducto(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", "Café", 10, "10.00"))
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	out, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, out.Items, 1, "debe fusionarse en una sola línea")
	assert.Equal(t, 5, out.Items[0].Quantity)
	assert.Equal(t, 5, out.ItemCount)
}

// La cantidad combinada se valida contra el stock vigente.
func TestAddItem_RechazaCantidadCombinadaSobreStock(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", "Café", 5, "10.00"))
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 3})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var unavailable *domain.ItemsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 6, unavailable.Items[0].Requested)
	assert.Equal(t, 5, unavailable.Items[0].Available)
}

// Producto inexistente → ErrNotFound.
func TestAddItem_ProductoInexistente(t *testing.T) {
	uc := cart.NewUseCase(newFakeCartRepo(), newFakeProductRepo(), logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El precio de la línea es snapshot del producto al momento de agregar.
func TestAddItem_CongelaPrecioDeLinea(t *testing.T) {
	p := producto("p1", "Café", 10, "10.00")
	productRepo := newFakeProductRepo(p)
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	out, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	// El precio del producto sube después; la línea conserva el snapshot.
	p.SellingPrice = dec("99.00")
	assert.True(t, out.Items[0].Price.Equal(dec("10.00")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación contra inventario vivo
// ──────────────────────────────────────────────────────────────────────────────

// Producto eliminado del catálogo → la línea desaparece del carrito.
func TestGetCart_ReconciliaProductoEliminado(t *testing.T) {
	productRepo := newFakeProductRepo(
		producto("p1", "Café", 10, "10.00"),
		producto("p2", "Té", 10, "5.00"),
	)
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, productRepo.Delete("p1"))

	out, err := uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "la línea del producto borrado debe eliminarse")
	assert.Equal(t, "p2", out.Items[0].ProductID)
}

// Stock por debajo de la cantidad pedida → la línea se recorta al disponible.
func TestGetCart_ReconciliaRecorteDeStock(t *testing.T) {
	p := producto("p1", "Café", 10, "10.00")
	productRepo := newFakeProductRepo(p)
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 8})
	require.NoError(t, err)

	p.Quantity = 3 // otro checkout consumió stock

	out, err := uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 3, out.Items[0].Quantity, "la cantidad debe recortarse al stock vigente")
}

// Stock en cero elimina la línea (no la deja en cantidad 0).
func TestGetCart_ReconciliaStockCero(t *testing.T) {
	p := producto("p1", "Café", 10, "10.00")
	productRepo := newFakeProductRepo(p)
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	p.Quantity = 0

	out, err := uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, out.Items, "una línea sin stock debe eliminarse, no quedar en 0")
}

// La reconciliación es idempotente: sin cambios de inventario no re-persiste.
func TestGetCart_ReconciliacionIdempotente(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", "Café", 10, "10.00"))
	cartRepo := newFakeCartRepo()
	uc := cart.NewUseCase(cartRepo, productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	savesAfterAdd := cartRepo.saves

	_, err = uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	_, err = uc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, savesAfterAdd, cartRepo.saves,
		"sin cambios, la reconciliación no debe escribir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItemQuantity_CantidadInvalida(t *testing.T) {
	uc := cart.NewUseCase(newFakeCartRepo(), newFakeProductRepo(), logger.Nop())

	_, err := uc.UpdateItemQuantity(context.Background(), "user-1", "i1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItemQuantity_LineaInexistente(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", "Café", 10, "10.00"))
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	_, err = uc.UpdateItemQuantity(context.Background(), "user-1", "linea-fantasma", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItem_EliminaLinea(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", "Café", 10, "10.00"))
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	out, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	out, err = uc.RemoveItem(context.Background(), "user-1", out.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestClear_VaciaCarritoYDescuento(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", "Café", 10, "10.00"))
	uc := cart.NewUseCase(newFakeCartRepo(), productRepo, logger.Nop())

	_, err := uc.AddItem(context.Background(), "user-1", dto.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	out, err := uc.Clear(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}
