package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Category     string          `json:"category" validate:"required"`
	Unit         string          `json:"unit"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     int             `json:"quantity"`
	ReorderPoint int             `json:"reorderPoint"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se
// modifica por aquí: se maneja con restock y con los decrementos del checkout.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	BuyingPrice  *decimal.Decimal `json:"buyingPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	ReorderPoint *int             `json:"reorderPoint"`
}

// RestockRequest entrada para reponer stock.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     int             `json:"quantity"`
	ReorderPoint int             `json:"reorderPoint"`
	LowStock     bool            `json:"lowStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryValuation desglose de valorización por categoría.
type CategoryValuation struct {
	Category     string          `json:"category"`
	ProductCount int             `json:"productCount"`
	Value        decimal.Decimal `json:"value"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// InventoryValuationResponse valorización del inventario a costo de compra.
type InventoryValuationResponse struct {
	TotalValue        decimal.Decimal     `json:"totalValue"`
	ProductCount      int                 `json:"productCount"`
	LowStockCount     int                 `json:"lowStockCount"`
	OutOfStockCount   int                 `json:"outOfStockCount"`
	CategoryBreakdown []CategoryValuation `json:"categoryBreakdown"`
	LastUpdated       time.Time           `json:"lastUpdated"`
}
