package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/domain/entity"
)

// PeriodSalesDTO fila de ventas agrupadas por período (daily/weekly/monthly/yearly).
type PeriodSalesDTO struct {
	Period       string          `json:"period"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"` // profit/revenue×100; 0 si revenue es 0
	OrderCount   int             `json:"orderCount"`
}

// ProductReportDTO acumulado por producto con margen y stock vigente.
type ProductReportDTO struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	QuantitySold int             `json:"quantitySold"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// CategoryReportDTO acumulado por categoría.
type CategoryReportDTO struct {
	Name         string          `json:"name"`
	Count        int             `json:"count"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// PaymentMethodReportDTO acumulado por método de pago.
type PaymentMethodReportDTO struct {
	PaymentMethod     string          `json:"paymentMethod"`
	Count             int             `json:"count"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalProfit       decimal.Decimal `json:"totalProfit"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// ReportItemResponse línea de un reporte individual.
type ReportItemResponse struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Cost         decimal.Decimal `json:"cost"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// ReportResponse proyección de un reporte de checkout.
type ReportResponse struct {
	ID            string                          `json:"id"`
	SaleID        string                          `json:"saleId,omitempty"`
	UserID        string                          `json:"userId"`
	Date          time.Time                       `json:"date"`
	Items         []ReportItemResponse            `json:"items"`
	TotalRevenue  decimal.Decimal                 `json:"totalRevenue"`
	TotalCost     decimal.Decimal                 `json:"totalCost"`
	TotalProfit   decimal.Decimal                 `json:"totalProfit"`
	Categories    map[string]entity.CategoryStats `json:"categories"`
	PaymentMethod string                          `json:"paymentMethod"`
}
