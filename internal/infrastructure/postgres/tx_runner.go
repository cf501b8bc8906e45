package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bilkro/pos-api/internal/application/checkout"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCheckout inicia una transacción con los repositorios del pipeline de
// checkout atados a ella y hace Commit o Rollback. Los bloqueos FOR UPDATE y
// los decrementos condicionados de stock viven hasta el Commit: o se aplican
// todos los efectos del checkout (stock, venta, reporte, carrito) o ninguno.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	saleRepo repository.SaleRepository,
	reportRepo repository.ReportRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	cartRepo := NewCartRepository(tx)
	saleRepo := NewSaleRepository(tx)
	reportRepo := NewReportRepository(tx)

	if err := fn(productRepo, cartRepo, saleRepo, reportRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
