package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/domain/entity"
)

// PeriodSalesResult fila cruda de la consulta de ventas agrupadas por período.
// La clave de período la produce la DB (to_char); el use case calcula margen.
type PeriodSalesResult struct {
	Period       string
	TotalRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	TotalProfit  decimal.Decimal
	OrderCount   int
	EarliestDate time.Time
	LatestDate   time.Time
}

// ProductSalesResult acumulado por producto sobre las líneas de reporte.
type ProductSalesResult struct {
	ProductID    string
	ProductName  string
	SKU          string
	Category     string
	QuantitySold int
	TotalRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	TotalProfit  decimal.Decimal
}

// CategorySalesResult acumulado por categoría sobre las líneas de reporte.
type CategorySalesResult struct {
	Category     string
	QuantitySold int
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
}

// PaymentMethodResult acumulado por método de pago sobre los reportes.
type PaymentMethodResult struct {
	PaymentMethod string
	OrderCount    int
	TotalRevenue  decimal.Decimal
	TotalProfit   decimal.Decimal
	AverageOrder  decimal.Decimal
}

// ReportRepository define el puerto para el registro analítico de checkouts.
// Create participa en la transacción de checkout; el resto son consultas
// read-only para el agregador de reportes (sin acceso de escritura a Product
// ni Cart).
type ReportRepository interface {
	Create(report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	// SalesByPeriod agrupa por la clave de formato dateFormat (to_char).
	SalesByPeriod(ctx context.Context, start, end time.Time, dateFormat string) ([]PeriodSalesResult, error)
	ProductSales(ctx context.Context, start, end time.Time) ([]ProductSalesResult, error)
	CategorySales(ctx context.Context, start, end time.Time, limit int) ([]CategorySalesResult, error)
	PaymentMethodSales(ctx context.Context, start, end time.Time) ([]PaymentMethodResult, error)
}
