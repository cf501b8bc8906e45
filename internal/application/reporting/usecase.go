// Package reporting contiene el agregador de reportes: consultas read-only
// sobre los registros analíticos que produce el checkout. No tiene acceso de
// escritura a productos ni carritos.
package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

// Períodos de agrupación soportados y su clave de formato en la DB (to_char).
var periodFormats = map[string]string{
	"daily":   "YYYY-MM-DD",
	"weekly":  `IYYY-"W"IW`,
	"monthly": "YYYY-MM",
	"yearly":  "YYYY",
}

const defaultRangeDays = 30

// DateRange rango de consulta. Campos en cero activan los defaults: últimos
// 30 días, con el fin normalizado a fin de día cuando solo llega una fecha.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// normalize aplica defaults y la normalización de fin de día (inclusivo).
func (r DateRange) normalize() (time.Time, time.Time) {
	end := r.End
	if end.IsZero() {
		end = time.Now()
	} else {
		end = endOfDay(end)
	}
	start := r.Start
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultRangeDays)
	}
	return start, end
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// UseCase agregador de reportes.
type UseCase struct {
	reportRepo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo}
}

// profitMargin = profit/revenue×100; 0 si revenue es 0 (guardia de división).
func profitMargin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

// SalesByPeriod ventas agrupadas por bucket de período (daily/weekly/monthly/yearly).
func (uc *UseCase) SalesByPeriod(ctx context.Context, rng DateRange, period string) ([]dto.PeriodSalesDTO, error) {
	if period == "" {
		period = "daily"
	}
	format, ok := periodFormats[period]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	start, end := rng.normalize()
	rows, err := uc.reportRepo.SalesByPeriod(ctx, start, end, format)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PeriodSalesDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PeriodSalesDTO{
			Period:       row.Period,
			TotalRevenue: row.TotalRevenue,
			TotalCost:    row.TotalCost,
			TotalProfit:  row.TotalProfit,
			ProfitMargin: profitMargin(row.TotalProfit, row.TotalRevenue),
			OrderCount:   row.OrderCount,
		})
	}
	return out, nil
}

// ProductReports acumulado por producto, ordenado según sortBy
// (sales|quantity|profit, default sales desc) y recortado a limit.
func (uc *UseCase) ProductReports(ctx context.Context, rng DateRange, limit int, sortBy string) ([]dto.ProductReportDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	start, end := rng.normalize()
	rows, err := uc.reportRepo.ProductSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	switch sortBy {
	case "quantity":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].QuantitySold > rows[j].QuantitySold })
	case "profit":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalProfit.GreaterThan(rows[j].TotalProfit) })
	case "", "sales":
		// la DB ya ordena por ventas desc
	default:
		return nil, domain.ErrInvalidInput
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]dto.ProductReportDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ProductReportDTO{
			ProductID:    row.ProductID,
			Name:         row.ProductName,
			SKU:          row.SKU,
			Category:     row.Category,
			QuantitySold: row.QuantitySold,
			TotalSales:   row.TotalRevenue,
			TotalProfit:  row.TotalProfit,
			ProfitMargin: profitMargin(row.TotalProfit, row.TotalRevenue),
		})
	}
	return out, nil
}

// CategoryReports acumulado por categoría.
func (uc *UseCase) CategoryReports(ctx context.Context, rng DateRange, limit int) ([]dto.CategoryReportDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	start, end := rng.normalize()
	rows, err := uc.reportRepo.CategorySales(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryReportDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.CategoryReportDTO{
			Name:         row.Category,
			Count:        row.QuantitySold,
			TotalSales:   row.TotalRevenue,
			TotalProfit:  row.TotalProfit,
			ProfitMargin: profitMargin(row.TotalProfit, row.TotalRevenue),
		})
	}
	return out, nil
}

// PaymentMethodReports acumulado por método de pago con valor promedio de orden.
func (uc *UseCase) PaymentMethodReports(ctx context.Context, rng DateRange) ([]dto.PaymentMethodReportDTO, error) {
	start, end := rng.normalize()
	rows, err := uc.reportRepo.PaymentMethodSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodReportDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PaymentMethodReportDTO{
			PaymentMethod:     row.PaymentMethod,
			Count:             row.OrderCount,
			TotalRevenue:      row.TotalRevenue,
			TotalProfit:       row.TotalProfit,
			AverageOrderValue: row.AverageOrder.Round(2),
		})
	}
	return out, nil
}

// GetReport devuelve un reporte individual con su desglose por línea.
func (uc *UseCase) GetReport(ctx context.Context, id string) (*dto.ReportResponse, error) {
	report, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	items := make([]dto.ReportItemResponse, 0, len(report.Items))
	for _, item := range report.Items {
		items = append(items, dto.ReportItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			SKU:          item.SKU,
			Category:     item.Category,
			Unit:         item.Unit,
			Quantity:     item.Quantity,
			BuyingPrice:  item.BuyingPrice,
			SellingPrice: item.SellingPrice,
			Cost:         item.Cost,
			Revenue:      item.Revenue,
			Profit:       item.Profit,
		})
	}
	return &dto.ReportResponse{
		ID:            report.ID,
		SaleID:        report.SaleID,
		UserID:        report.UserID,
		Date:          report.Date,
		Items:         items,
		TotalRevenue:  report.TotalRevenue,
		TotalCost:     report.TotalCost,
		TotalProfit:   report.TotalProfit,
		Categories:    report.Categories,
		PaymentMethod: report.PaymentMethod,
	}, nil
}
