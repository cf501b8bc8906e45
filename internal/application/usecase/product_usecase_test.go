package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/application/usecase"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	if offset >= len(f.products) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.products) {
		end = len(f.products)
	}
	return f.products[offset:end], nil
}

func (f *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(id string) error { return nil }

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return f.GetByID(id) }

func (f *fakeProductRepo) DecrementStock(id string, qty int) error {
	for _, p := range f.products {
		if p.ID == id {
			if p.Quantity < qty {
				return domain.ErrInsufficientStock
			}
			p.Quantity -= qty
			return nil
		}
	}
	return domain.ErrInsufficientStock
}

func (f *fakeProductRepo) IncrementStock(id string, qty int) error {
	for _, p := range f.products {
		if p.ID == id {
			p.Quantity += qty
			return nil
		}
	}
	return domain.ErrNotFound
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD y restock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_RechazaSKUDuplicado(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := usecase.NewProductUseCase(repo)

	in := dto.CreateProductRequest{SKU: "CAFE-01", Name: "Café", Category: "bebidas"}
	_, err := uc.Create(in)
	require.NoError(t, err)

	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_RechazaPreciosNegativos(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductRepo{})

	_, err := uc.Create(dto.CreateProductRequest{
		SKU: "X", Name: "X", Category: "x", BuyingPrice: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRestock_SumaStock(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		{ID: "p1", SKU: "S1", Name: "Café", Quantity: 2},
	}}
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Restock("p1", dto.RestockRequest{Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 7, out.Quantity)
	assert.Equal(t, 7, repo.products[0].Quantity)
}

func TestProductRestock_CantidadInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductRepo{})

	_, err := uc.Restock("p1", dto.RestockRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// LowStock marca productos en o debajo de su umbral de reposición.
func TestProductListLowStock(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		{ID: "p1", Name: "ok", Quantity: 10, ReorderPoint: 3},
		{ID: "p2", Name: "justo", Quantity: 3, ReorderPoint: 3},
		{ID: "p3", Name: "agotado", Quantity: 0, ReorderPoint: 3},
	}}
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].LowStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Valorización del inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryValuation_TotalesYDesglose(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		{ID: "p1", Category: "bebidas", Quantity: 10, BuyingPrice: dec("6.00"), ReorderPoint: 2},
		{ID: "p2", Category: "bebidas", Quantity: 0, BuyingPrice: dec("3.00"), ReorderPoint: 2},
		{ID: "p3", Category: "snacks", Quantity: 20, BuyingPrice: dec("2.00"), ReorderPoint: 5},
	}}
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.InventoryValuation()
	require.NoError(t, err)

	assert.True(t, out.TotalValue.Equal(dec("100.00")), "60 + 0 + 40")
	assert.Equal(t, 3, out.ProductCount)
	assert.Equal(t, 1, out.OutOfStockCount)
	assert.Equal(t, 1, out.LowStockCount)

	require.Len(t, out.CategoryBreakdown, 2)
	bebidas := out.CategoryBreakdown[0]
	assert.Equal(t, "bebidas", bebidas.Category)
	assert.Equal(t, 2, bebidas.ProductCount)
	assert.True(t, bebidas.Value.Equal(dec("60.00")))
	assert.True(t, bebidas.Percentage.Equal(dec("60")), "60/100 × 100")
}

// Catálogo vacío: todo en cero, sin división por cero en porcentajes.
func TestInventoryValuation_CatalogoVacio(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductRepo{})

	out, err := uc.InventoryValuation()
	require.NoError(t, err)
	assert.True(t, out.TotalValue.IsZero())
	assert.Equal(t, 0, out.ProductCount)
	assert.Empty(t, out.CategoryBreakdown)
}
