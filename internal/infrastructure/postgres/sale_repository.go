package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Se llama dentro de la transacción
// de checkout, con InvoiceNumber ya asignado.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, user_id, invoice_number, subtotal, discount, total,
			payment_method, customer_name, customer_email, customer_phone, customer_address,
			note, coupon_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.UserID, sale.InvoiceNumber, sale.Subtotal, sale.Discount, sale.Total,
		sale.PaymentMethod, sale.Customer.Name, sale.Customer.Email, sale.Customer.Phone,
		sale.Customer.Address, sale.Note, sale.CouponCode, sale.Status, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, name, sku, unit, quantity, price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, sale.ID, item.ProductID, item.Name, item.SKU, item.Unit, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(),
		`SELECT id, user_id, invoice_number, subtotal, discount, total, payment_method,
			customer_name, customer_email, customer_phone, customer_address,
			note, coupon_code, status, created_at
		 FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.InvoiceNumber, &s.Subtotal, &s.Discount, &s.Total,
			&s.PaymentMethod, &s.Customer.Name, &s.Customer.Email, &s.Customer.Phone,
			&s.Customer.Address, &s.Note, &s.CouponCode, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) loadItems(sale *entity.Sale) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, sale_id, product_id, name, sku, unit, quantity, price
		 FROM sale_items WHERE sale_id = $1 ORDER BY id ASC`, sale.ID)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Name, &item.SKU,
			&item.Unit, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, item)
	}
	return rows.Err()
}

func (r *SaleRepo) ListByDateRange(start, end time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, user_id, invoice_number, subtotal, discount, total, payment_method,
			customer_name, customer_email, customer_phone, customer_address,
			note, coupon_code, status, created_at
		 FROM sales WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.InvoiceNumber, &s.Subtotal, &s.Discount,
			&s.Total, &s.PaymentMethod, &s.Customer.Name, &s.Customer.Email, &s.Customer.Phone,
			&s.Customer.Address, &s.Note, &s.CouponCode, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range sales {
		if err := r.loadItems(s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

// NextInvoiceNumber asigna el siguiente consecutivo INV-YYYYMMDD-NNNN del día.
// El advisory lock transaccional sobre la clave del día serializa a los
// checkouts concurrentes: se libera recién en el commit, y el SELECT posterior
// corre con un snapshot que ya incluye la factura insertada por la tx anterior.
// Un FOR UPDATE sobre la última factura no alcanza: el primer checkout del día
// no tiene fila que bloquear, y una tx bloqueada no ve filas insertadas por la
// que la bloqueó. La secuencia diaria queda monótona y sin huecos por carrera
// (sí puede haber huecos si una tx hace rollback).
func (r *SaleRepo) NextInvoiceNumber(now time.Time) (string, error) {
	day := now.Format("20060102")
	prefix := "INV-" + day + "-"

	if _, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtext($1))`, "invoice_"+day); err != nil {
		return "", fmt.Errorf("bloquear secuencia de facturas: %w", err)
	}

	var last string
	err := r.q.QueryRow(context.Background(),
		`SELECT invoice_number FROM sales
		 WHERE invoice_number LIKE $1
		 ORDER BY invoice_number DESC LIMIT 1`,
		prefix+"%").Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return prefix + "0001", nil
		}
		return "", fmt.Errorf("next invoice number: %w", err)
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil {
		return "", fmt.Errorf("next invoice number: factura malformada %q: %w", last, err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}
