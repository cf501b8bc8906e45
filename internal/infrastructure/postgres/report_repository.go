package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación del puerto ReportRepository sobre PostgreSQL.
// Las consultas de agregación delegan el bucketing y los group-by a la DB;
// las filas de reporte son desnormalizadas, así que no requieren joins a
// products (el histórico sobrevive a ediciones y borrados).
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste el reporte con sus líneas y el acumulado por categoría.
// Participa en la transacción de checkout.
func (r *ReportRepo) Create(report *entity.Report) error {
	ctx := context.Background()
	query := `
		INSERT INTO reports (id, sale_id, user_id, date, total_revenue, total_cost,
			total_profit, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		report.ID, report.SaleID, report.UserID, report.Date, report.TotalRevenue,
		report.TotalCost, report.TotalProfit, report.PaymentMethod, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	for _, item := range report.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO report_items (id, report_id, product_id, product_name, sku, category,
				unit, quantity, buying_price, selling_price, cost, revenue, profit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			item.ID, report.ID, item.ProductID, item.ProductName, item.SKU, item.Category,
			item.Unit, item.Quantity, item.BuyingPrice, item.SellingPrice,
			item.Cost, item.Revenue, item.Profit)
		if err != nil {
			return fmt.Errorf("insert report item: %w", err)
		}
	}
	for _, name := range report.CategoryNames() {
		stats := report.Categories[name]
		_, err := r.q.Exec(ctx,
			`INSERT INTO report_categories (report_id, category, item_count, revenue, profit)
			 VALUES ($1, $2, $3, $4, $5)`,
			report.ID, name, stats.Count, stats.Revenue, stats.Profit)
		if err != nil {
			return fmt.Errorf("insert report category: %w", err)
		}
	}
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	var rep entity.Report
	err := r.q.QueryRow(ctx,
		`SELECT id, sale_id, user_id, date, total_revenue, total_cost, total_profit,
			payment_method, created_at
		 FROM reports WHERE id = $1`, id).
		Scan(&rep.ID, &rep.SaleID, &rep.UserID, &rep.Date, &rep.TotalRevenue,
			&rep.TotalCost, &rep.TotalProfit, &rep.PaymentMethod, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, report_id, product_id, product_name, sku, category, unit, quantity,
			buying_price, selling_price, cost, revenue, profit
		 FROM report_items WHERE report_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("load report items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.ReportItem
		if err := rows.Scan(&item.ID, &item.ReportID, &item.ProductID, &item.ProductName,
			&item.SKU, &item.Category, &item.Unit, &item.Quantity, &item.BuyingPrice,
			&item.SellingPrice, &item.Cost, &item.Revenue, &item.Profit); err != nil {
			return nil, fmt.Errorf("scan report item: %w", err)
		}
		rep.Items = append(rep.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	catRows, err := r.q.Query(ctx,
		`SELECT category, item_count, revenue, profit
		 FROM report_categories WHERE report_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("load report categories: %w", err)
	}
	defer catRows.Close()
	rep.Categories = make(map[string]entity.CategoryStats)
	for catRows.Next() {
		var name string
		var stats entity.CategoryStats
		if err := catRows.Scan(&name, &stats.Count, &stats.Revenue, &stats.Profit); err != nil {
			return nil, fmt.Errorf("scan report category: %w", err)
		}
		rep.Categories[name] = stats
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}
	return &rep, nil
}

// SalesByPeriod agrupa los reportes por la clave to_char(date, dateFormat).
func (r *ReportRepo) SalesByPeriod(ctx context.Context, start, end time.Time, dateFormat string) ([]repository.PeriodSalesResult, error) {
	rows, err := r.q.Query(ctx,
		`SELECT to_char(date, $3) AS period,
			COALESCE(SUM(total_revenue), 0),
			COALESCE(SUM(total_cost), 0),
			COALESCE(SUM(total_profit), 0),
			COUNT(*),
			MIN(date),
			MAX(date)
		 FROM reports
		 WHERE date >= $1 AND date <= $2
		 GROUP BY period
		 ORDER BY period ASC`,
		start, end, dateFormat)
	if err != nil {
		return nil, fmt.Errorf("sales by period: %w", err)
	}
	defer rows.Close()

	var results []repository.PeriodSalesResult
	for rows.Next() {
		var res repository.PeriodSalesResult
		if err := rows.Scan(&res.Period, &res.TotalRevenue, &res.TotalCost, &res.TotalProfit,
			&res.OrderCount, &res.EarliestDate, &res.LatestDate); err != nil {
			return nil, fmt.Errorf("scan period sales: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ProductSales acumula las líneas de reporte por producto, ordenado por
// ingreso descendente.
func (r *ReportRepo) ProductSales(ctx context.Context, start, end time.Time) ([]repository.ProductSalesResult, error) {
	rows, err := r.q.Query(ctx,
		`SELECT ri.product_id, ri.product_name, ri.sku, ri.category,
			COALESCE(SUM(ri.quantity), 0),
			COALESCE(SUM(ri.revenue), 0),
			COALESCE(SUM(ri.cost), 0),
			COALESCE(SUM(ri.profit), 0)
		 FROM report_items ri
		 JOIN reports r ON r.id = ri.report_id
		 WHERE r.date >= $1 AND r.date <= $2
		 GROUP BY ri.product_id, ri.product_name, ri.sku, ri.category
		 ORDER BY SUM(ri.revenue) DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("product sales: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var res repository.ProductSalesResult
		if err := rows.Scan(&res.ProductID, &res.ProductName, &res.SKU, &res.Category,
			&res.QuantitySold, &res.TotalRevenue, &res.TotalCost, &res.TotalProfit); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// CategorySales acumula las líneas de reporte por categoría.
func (r *ReportRepo) CategorySales(ctx context.Context, start, end time.Time, limit int) ([]repository.CategorySalesResult, error) {
	rows, err := r.q.Query(ctx,
		`SELECT ri.category,
			COALESCE(SUM(ri.quantity), 0),
			COALESCE(SUM(ri.revenue), 0),
			COALESCE(SUM(ri.profit), 0)
		 FROM report_items ri
		 JOIN reports r ON r.id = ri.report_id
		 WHERE r.date >= $1 AND r.date <= $2
		 GROUP BY ri.category
		 ORDER BY SUM(ri.revenue) DESC
		 LIMIT $3`,
		start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("category sales: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySalesResult
	for rows.Next() {
		var res repository.CategorySalesResult
		if err := rows.Scan(&res.Category, &res.QuantitySold, &res.TotalRevenue, &res.TotalProfit); err != nil {
			return nil, fmt.Errorf("scan category sales: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// PaymentMethodSales acumula los reportes por método de pago.
func (r *ReportRepo) PaymentMethodSales(ctx context.Context, start, end time.Time) ([]repository.PaymentMethodResult, error) {
	rows, err := r.q.Query(ctx,
		`SELECT payment_method,
			COUNT(*),
			COALESCE(SUM(total_revenue), 0),
			COALESCE(SUM(total_profit), 0),
			COALESCE(AVG(total_revenue), 0)
		 FROM reports
		 WHERE date >= $1 AND date <= $2
		 GROUP BY payment_method
		 ORDER BY SUM(total_revenue) DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("payment method sales: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentMethodResult
	for rows.Next() {
		var res repository.PaymentMethodResult
		if err := rows.Scan(&res.PaymentMethod, &res.OrderCount, &res.TotalRevenue,
			&res.TotalProfit, &res.AverageOrder); err != nil {
			return nil, fmt.Errorf("scan payment method sales: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
