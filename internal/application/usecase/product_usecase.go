package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD de productos. El stock solo se modifica
// por restock y por los decrementos del checkout.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.ReorderPoint < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.BuyingPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Unit == "" {
		in.Unit = "pcs"
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Unit:         in.Unit,
		BuyingPrice:  in.BuyingPrice,
		SellingPrice: in.SellingPrice,
		Quantity:     in.Quantity,
		ReorderPoint: in.ReorderPoint,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto por su código externo (escaneo).
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No toca Quantity.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.BuyingPrice != nil {
		if in.BuyingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.BuyingPrice = *in.BuyingPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Restock suma stock al producto (entrada de mercadería).
func (uc *ProductUseCase) Restock(id string, in dto.RestockRequest) (*dto.ProductResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := uc.repo.IncrementStock(id, in.Quantity); err != nil {
		return nil, err
	}
	product.Quantity += in.Quantity
	product.UpdatedAt = time.Now()
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock productos en o debajo de su umbral de reposición.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// InventoryValuation valoriza el inventario a costo de compra, con desglose
// por categoría y conteos de stock bajo/agotado.
func (uc *ProductUseCase) InventoryValuation() (*dto.InventoryValuationResponse, error) {
	// Recorre todo el catálogo por páginas; el catálogo de un POS es acotado.
	const pageSize = 500
	var all []*entity.Product
	for offset := 0; ; offset += pageSize {
		page, err := uc.repo.List(pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			break
		}
	}

	totalValue := decimal.Zero
	lowStock, outOfStock := 0, 0
	type catAgg struct {
		count int
		value decimal.Decimal
	}
	categories := make(map[string]*catAgg)
	var order []string
	for _, p := range all {
		value := p.BuyingPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		totalValue = totalValue.Add(value)
		if p.Quantity == 0 {
			outOfStock++
		}
		if p.LowStock() {
			lowStock++
		}
		agg, ok := categories[p.Category]
		if !ok {
			agg = &catAgg{}
			categories[p.Category] = agg
			order = append(order, p.Category)
		}
		agg.count++
		agg.value = agg.value.Add(value)
	}

	breakdown := make([]dto.CategoryValuation, 0, len(order))
	hundred := decimal.NewFromInt(100)
	for _, name := range order {
		agg := categories[name]
		pct := decimal.Zero
		if !totalValue.IsZero() {
			pct = agg.value.Div(totalValue).Mul(hundred).Round(2)
		}
		breakdown = append(breakdown, dto.CategoryValuation{
			Category:     name,
			ProductCount: agg.count,
			Value:        agg.value,
			Percentage:   pct,
		})
	}
	return &dto.InventoryValuationResponse{
		TotalValue:        totalValue,
		ProductCount:      len(all),
		LowStockCount:     lowStock,
		OutOfStockCount:   outOfStock,
		CategoryBreakdown: breakdown,
		LastUpdated:       time.Now(),
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Unit:         p.Unit,
		BuyingPrice:  p.BuyingPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
		ReorderPoint: p.ReorderPoint,
		LowStock:     p.LowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
