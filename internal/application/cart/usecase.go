// Package cart implementa el agregado del carrito de compras: creación lazy,
// reconciliación contra inventario vivo en cada lectura, y las mutaciones
// add/update/remove/clear.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
	"github.com/bilkro/pos-api/pkg/logger"
)

// UseCase casos de uso del carrito. El carrito es de un solo dueño, así que
// las operaciones no requieren bloqueo entre requests; el stock solo se
// verifica aquí de forma informativa, la verificación autoritativa es la del
// checkout.
type UseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, log *logger.Logger) *UseCase {
	return &UseCase{cartRepo: cartRepo, productRepo: productRepo, log: log}
}

// GetCart devuelve el carrito activo del usuario, creándolo vacío si no
// existe, y lo reconcilia contra el inventario vivo antes de responder.
func (uc *UseCase) GetCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := uc.reconcileAndSave(cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// getOrCreate busca el carrito activo; si no hay, crea uno vacío.
func (uc *UseCase) getOrCreate(userID string) (*entity.Cart, error) {
	cart, err := uc.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	now := time.Now()
	cart = &entity.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    entity.CartStatusActive,
		Discount:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("crear carrito: %w", err)
	}
	return cart, nil
}

// Reconcile repara el carrito contra el inventario vigente: elimina líneas de
// productos inexistentes o sin stock y recorta cantidades al stock disponible.
// Recorre en reversa para poder eliminar in situ. Devuelve si hubo mutación.
// Es una reparación lazy, no una garantía transaccional: el stock puede volver
// a cambiar antes del checkout.
func (uc *UseCase) Reconcile(cart *entity.Cart) (bool, error) {
	changed := false
	for i := len(cart.Items) - 1; i >= 0; i-- {
		item := &cart.Items[i]
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return changed, err
		}
		if product == nil || product.Quantity == 0 {
			cart.RemoveItemAt(i)
			changed = true
			continue
		}
		if item.Quantity > product.Quantity {
			item.Quantity = product.Quantity
			changed = true
		}
	}
	return changed, nil
}

// reconcileAndSave persiste el carrito solo si la reconciliación lo mutó.
func (uc *UseCase) reconcileAndSave(cart *entity.Cart) error {
	changed, err := uc.Reconcile(cart)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	cart.UpdatedAt = time.Now()
	if err := uc.cartRepo.SaveItems(cart); err != nil {
		return fmt.Errorf("persistir reconciliación: %w", err)
	}
	uc.log.Debug().Str("cart_id", cart.ID).Msg("carrito reconciliado contra inventario")
	return nil
}

// AddItem agrega un producto al carrito (o suma cantidades si ya es línea),
// con snapshot de precio y nombre. Valida contra el stock vigente y devuelve
// ErrInsufficientStock informando lo disponible.
func (uc *UseCase) AddItem(ctx context.Context, userID string, in dto.AddItemRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}

	requested := in.Quantity
	if existing := cart.ItemByProduct(in.ProductID); existing != nil {
		requested += existing.Quantity
	}
	if requested > product.Quantity {
		return nil, &domain.ItemsUnavailableError{Items: []domain.UnavailableItem{{
			Name:      product.Name,
			Requested: requested,
			Available: product.Quantity,
		}}}
	}

	now := time.Now()
	if existing := cart.ItemByProduct(in.ProductID); existing != nil {
		existing.Quantity = requested
	} else {
		cart.Items = append(cart.Items, entity.CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Price:     product.SellingPrice,
			Name:      product.Name,
			AddedAt:   now,
		})
	}
	cart.UpdatedAt = now
	if err := uc.cartRepo.SaveItems(cart); err != nil {
		return nil, fmt.Errorf("guardar carrito: %w", err)
	}
	return toCartResponse(cart), nil
}

// UpdateItemQuantity reemplaza la cantidad de una línea. No verifica stock:
// la verificación autoritativa ocurre en el checkout.
func (uc *UseCase) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrCartNotFound
	}
	item := cart.ItemByID(itemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Quantity = quantity
	cart.UpdatedAt = time.Now()
	if err := uc.cartRepo.SaveItems(cart); err != nil {
		return nil, fmt.Errorf("guardar carrito: %w", err)
	}
	return toCartResponse(cart), nil
}

// RemoveItem elimina una línea del carrito.
func (uc *UseCase) RemoveItem(ctx context.Context, userID, itemID string) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrCartNotFound
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.RemoveItemAt(i)
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	cart.UpdatedAt = time.Now()
	if err := uc.cartRepo.SaveItems(cart); err != nil {
		return nil, fmt.Errorf("guardar carrito: %w", err)
	}
	return toCartResponse(cart), nil
}

// Clear vacía el carrito activo del usuario.
func (uc *UseCase) Clear(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrCartNotFound
	}
	cart.Items = nil
	cart.Note = ""
	cart.CouponCode = ""
	cart.Discount = decimal.Zero
	cart.UpdatedAt = time.Now()
	if err := uc.cartRepo.SaveItems(cart); err != nil {
		return nil, fmt.Errorf("guardar carrito: %w", err)
	}
	return toCartResponse(cart), nil
}

// ListCarts listado paginado por estado (solo admin; la autorización la
// resuelve la capa HTTP).
func (uc *UseCase) ListCarts(ctx context.Context, status string, limit, offset int) (*dto.CartListResponse, error) {
	if status == "" {
		status = entity.CartStatusActive
	}
	if status != entity.CartStatusActive && status != entity.CartStatusConverted {
		return nil, domain.ErrInvalidInput
	}
	carts, err := uc.cartRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.cartRepo.CountByStatus(status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartResponse, 0, len(carts))
	for _, c := range carts {
		items = append(items, *toCartResponse(c))
	}
	return &dto.CartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, dto.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return &dto.CartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Status:     c.Status,
		Items:      items,
		ItemCount:  c.ItemCount(),
		Subtotal:   c.Subtotal(),
		Discount:   c.Discount,
		Total:      c.Total(),
		Note:       c.Note,
		CouponCode: c.CouponCode,
		UpdatedAt:  c.UpdatedAt,
	}
}
