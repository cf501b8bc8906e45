package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ReportItem desglose de costo/ingreso/utilidad de una línea vendida.
// Copia desnormalizada del producto: el histórico sobrevive a ediciones o
// borrados posteriores del producto.
type ReportItem struct {
	ID           string
	ReportID     string
	ProductID    string
	ProductName  string
	SKU          string
	Category     string
	Unit         string
	Quantity     int
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	Cost         decimal.Decimal // BuyingPrice × Quantity
	Revenue      decimal.Decimal // precio de venta snapshot × Quantity
	Profit       decimal.Decimal // Revenue - Cost
}

// CategoryStats acumulado por categoría dentro de un reporte.
type CategoryStats struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// Report es el registro analítico de un checkout completado. Append-only:
// se crea una vez y jamás se modifica.
type Report struct {
	ID            string
	SaleID        string // venta que lo originó; vacío en flujos sin venta
	UserID        string
	Date          time.Time
	Items         []ReportItem
	TotalRevenue  decimal.Decimal
	TotalCost     decimal.Decimal
	TotalProfit   decimal.Decimal
	Categories    map[string]CategoryStats
	PaymentMethod string
	CreatedAt     time.Time
}

// MergeCategory acumula una línea en el mapa de categorías (suma por clave).
func (r *Report) MergeCategory(category string, quantity int, revenue, profit decimal.Decimal) {
	if r.Categories == nil {
		r.Categories = make(map[string]CategoryStats)
	}
	stats := r.Categories[category]
	stats.Count += quantity
	stats.Revenue = stats.Revenue.Add(revenue)
	stats.Profit = stats.Profit.Add(profit)
	r.Categories[category] = stats
}

// CategoryNames devuelve las categorías del reporte en orden alfabético,
// para recorridos y respuestas deterministas.
func (r *Report) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
