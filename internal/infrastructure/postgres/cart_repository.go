package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// La tabla carts tiene un índice único parcial sobre (user_id) WHERE
// status = 'active': la DB garantiza a lo sumo un carrito activo por usuario.
type CartRepo struct {
	q Querier
}

func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Create persiste un carrito nuevo (sin líneas).
func (r *CartRepo) Create(cart *entity.Cart) error {
	query := `
		INSERT INTO carts (id, user_id, status, discount, note, coupon_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		cart.ID, cart.UserID, cart.Status, cart.Discount, cart.Note, cart.CouponCode,
		cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

func (r *CartRepo) scanCart(row pgx.Row) (*entity.Cart, error) {
	var c entity.Cart
	err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.Discount, &c.Note, &c.CouponCode,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadItems(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// loadItems carga las líneas en orden de inserción.
func (r *CartRepo) loadItems(cart *entity.Cart) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, cart_id, product_id, quantity, price, name, added_at
		 FROM cart_items WHERE cart_id = $1 ORDER BY added_at ASC, id ASC`,
		cart.ID)
	if err != nil {
		return fmt.Errorf("load cart items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&item.Price, &item.Name, &item.AddedAt); err != nil {
			return fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

// GetActiveByUser devuelve el carrito activo del usuario; nil si no tiene.
func (r *CartRepo) GetActiveByUser(userID string) (*entity.Cart, error) {
	cart, err := r.scanCart(r.q.QueryRow(context.Background(),
		`SELECT id, user_id, status, discount, note, coupon_code, created_at, updated_at
		 FROM carts WHERE user_id = $1 AND status = $2`,
		userID, entity.CartStatusActive))
	if err != nil {
		return nil, fmt.Errorf("get active cart: %w", err)
	}
	return cart, nil
}

func (r *CartRepo) GetByID(id string) (*entity.Cart, error) {
	cart, err := r.scanCart(r.q.QueryRow(context.Background(),
		`SELECT id, user_id, status, discount, note, coupon_code, created_at, updated_at
		 FROM carts WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// SaveItems reemplaza las líneas persistidas con las del carrito en memoria
// (delete + insert) y refresca note/coupon/discount. Se usa tras cada
// mutación y tras la reconciliación.
func (r *CartRepo) SaveItems(cart *entity.Cart) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	for _, item := range cart.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO cart_items (id, cart_id, product_id, quantity, price, name, added_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, cart.ID, item.ProductID, item.Quantity, item.Price, item.Name, item.AddedAt)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}
	_, err := r.q.Exec(ctx,
		`UPDATE carts SET discount = $2, note = $3, coupon_code = $4, updated_at = now() WHERE id = $1`,
		cart.ID, cart.Discount, cart.Note, cart.CouponCode)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	return nil
}

// SetStatus transiciona el estado del carrito.
func (r *CartRepo) SetStatus(cartID, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE carts SET status = $2, updated_at = now() WHERE id = $1`,
		cartID, status)
	if err != nil {
		return fmt.Errorf("set cart status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}

// ListByStatus lista carritos por estado con sus líneas (vista admin).
func (r *CartRepo) ListByStatus(status string, limit, offset int) ([]*entity.Cart, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, user_id, status, discount, note, coupon_code, created_at, updated_at
		 FROM carts WHERE status = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	defer rows.Close()

	var carts []*entity.Cart
	for rows.Next() {
		var c entity.Cart
		if err := rows.Scan(&c.ID, &c.UserID, &c.Status, &c.Discount, &c.Note, &c.CouponCode,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart: %w", err)
		}
		carts = append(carts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range carts {
		if err := r.loadItems(c); err != nil {
			return nil, err
		}
	}
	return carts, nil
}

func (r *CartRepo) CountByStatus(status string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM carts WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count carts: %w", err)
	}
	return count, nil
}
