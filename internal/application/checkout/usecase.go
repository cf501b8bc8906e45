// Package checkout implementa el pipeline que convierte un carrito mutable en
// una venta durable: Active → Validating → Committing → Converted.
//
// Toda la secuencia validar-decrementar-registrar corre dentro de una sola
// transacción (TxRunner). Las filas de producto se bloquean con SELECT FOR
// UPDATE y el decremento es condicionado, así dos checkouts concurrentes que
// leen stock 1 no pueden decrementar ambos a -1. La notificación por correo
// ocurre después del commit y nunca lo revierte.
package checkout

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
	"github.com/bilkro/pos-api/pkg/logger"
)

// UseCase pipeline de checkout.
type UseCase struct {
	txRunner TxRunner
	notifier Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. notifier puede ser nil (sin correo).
func NewUseCase(txRunner TxRunner, notifier Notifier, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, notifier: notifier, log: log}
}

// Checkout ejecuta el pipeline completo para el carrito activo del usuario.
//
//  1. Carga el carrito activo (ErrCartNotFound / ErrEmptyCart).
//  2. Relee cada producto dentro de la tx con bloqueo de fila y verifica el
//     stock vigente línea por línea; si alguna falla, rollback con
//     ItemsUnavailableError y el carrito sigue activo.
//  3. Decrementa stock por línea (UPDATE condicionado), acumula
//     costo/ingreso/utilidad y el agregado por categoría.
//  4. Crea la venta (consecutivo INV-YYYYMMDD-NNNN asignado en la tx) y el
//     reporte con el desglose.
//  5. Marca el carrito como converted (terminal).
//  6. Tras el commit, envía la confirmación por correo; su fallo solo degrada
//     el mensaje de éxito.
func (uc *UseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.CheckoutResponse
	var sale *entity.Sale

	err := uc.txRunner.RunCheckout(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
		saleRepo repository.SaleRepository,
		reportRepo repository.ReportRepository,
	) error {
		cart, err := cartRepo.GetActiveByUser(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return domain.ErrEmptyCart
		}

		// Validating: releer productos desde el inventario (no del snapshot
		// del carrito) con bloqueo de fila. Los bloqueos se toman en orden
		// global por ProductID: dos checkouts que comparten productos en orden
		// inverso no pueden quedar en deadlock AB/BA. Producto borrado =
		// disponible 0.
		lockOrder := make([]entity.CartItem, len(cart.Items))
		copy(lockOrder, cart.Items)
		sort.Slice(lockOrder, func(i, j int) bool { return lockOrder[i].ProductID < lockOrder[j].ProductID })

		products := make(map[string]*entity.Product, len(cart.Items))
		var unavailable []domain.UnavailableItem
		for _, item := range lockOrder {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			available := 0
			if product != nil {
				available = product.Quantity
				products[item.ProductID] = product
			}
			if product == nil || available < item.Quantity {
				unavailable = append(unavailable, domain.UnavailableItem{
					Name:      item.Name,
					Requested: item.Quantity,
					Available: available,
				})
			}
		}
		if len(unavailable) > 0 {
			return &domain.ItemsUnavailableError{Items: unavailable}
		}

		// Committing: decrementos + desglose por línea + agregado por categoría.
		now := time.Now()
		report := &entity.Report{
			ID:            uuid.New().String(),
			UserID:        userID,
			Date:          now,
			Categories:    make(map[string]entity.CategoryStats),
			PaymentMethod: in.PaymentMethod,
			CreatedAt:     now,
		}
		var respItems []dto.CheckoutItemResponse
		for _, item := range cart.Items {
			product := products[item.ProductID]
			if err := productRepo.DecrementStock(product.ID, item.Quantity); err != nil {
				return fmt.Errorf("decrementar stock de %s: %w", product.Name, err)
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			cost := product.BuyingPrice.Mul(qty)
			revenue := item.Price.Mul(qty)
			profit := revenue.Sub(cost)

			report.Items = append(report.Items, entity.ReportItem{
				ID:           uuid.New().String(),
				ReportID:     report.ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				SKU:          product.SKU,
				Category:     product.Category,
				Unit:         product.Unit,
				Quantity:     item.Quantity,
				BuyingPrice:  product.BuyingPrice,
				SellingPrice: product.SellingPrice,
				Cost:         cost,
				Revenue:      revenue,
				Profit:       profit,
			})
			report.MergeCategory(product.Category, item.Quantity, revenue, profit)
			report.TotalCost = report.TotalCost.Add(cost)
			report.TotalProfit = report.TotalProfit.Add(profit)

			respItems = append(respItems, dto.CheckoutItemResponse{
				ProductID: product.ID,
				Name:      product.Name,
				Category:  product.Category,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Cost:      cost,
				Revenue:   revenue,
				Profit:    profit,
			})
		}
		report.TotalRevenue = cart.Total()

		// Venta durable con consecutivo diario.
		invoiceNumber, err := saleRepo.NextInvoiceNumber(now)
		if err != nil {
			return fmt.Errorf("asignar número de factura: %w", err)
		}
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			UserID:        userID,
			InvoiceNumber: invoiceNumber,
			Subtotal:      cart.Subtotal(),
			Discount:      cart.Discount,
			Total:         cart.Total(),
			PaymentMethod: in.PaymentMethod,
			Customer: entity.CustomerInfo{
				Name:    in.CustomerInfo.Name,
				Email:   in.CustomerInfo.Email,
				Phone:   in.CustomerInfo.Phone,
				Address: in.CustomerInfo.Address,
			},
			Note:       cart.Note,
			CouponCode: cart.CouponCode,
			Status:     entity.SaleStatusCompleted,
			CreatedAt:  now,
		}
		for _, item := range cart.Items {
			product := products[item.ProductID]
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				SKU:       product.SKU,
				Unit:      product.Unit,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		if err := saleRepo.Create(sale); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}
		report.SaleID = sale.ID
		if err := reportRepo.Create(report); err != nil {
			return fmt.Errorf("crear reporte: %w", err)
		}

		// Converted: transición terminal del carrito.
		if err := cartRepo.SetStatus(cart.ID, entity.CartStatusConverted); err != nil {
			return fmt.Errorf("convertir carrito: %w", err)
		}

		resp = &dto.CheckoutResponse{
			SaleID:        sale.ID,
			ReportID:      report.ID,
			InvoiceNumber: sale.InvoiceNumber,
			Items:         respItems,
			ItemCount:     cart.ItemCount(),
			Subtotal:      sale.Subtotal,
			Discount:      sale.Discount,
			Total:         sale.Total,
			TotalProfit:   report.TotalProfit,
			Categories:    report.Categories,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("sale_id", resp.SaleID).
		Str("invoice", resp.InvoiceNumber).
		Str("total", resp.Total.String()).
		Msg("checkout completado")

	// Best effort: la venta ya está confirmada; el correo no la condiciona.
	resp.EmailSent = uc.sendConfirmation(ctx, sale, resp.ReportID)
	return resp, nil
}

// sendConfirmation despacha el correo de confirmación si hay notificador y
// email del cliente. Los fallos solo se registran en el log.
func (uc *UseCase) sendConfirmation(ctx context.Context, sale *entity.Sale, reportID string) bool {
	if uc.notifier == nil || sale.Customer.Email == "" {
		return false
	}
	lines := make([]OrderLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, OrderLine{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}
	details := OrderDetails{
		TransactionID: reportID,
		InvoiceNumber: sale.InvoiceNumber,
		Date:          sale.CreatedAt,
		Items:         lines,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
	}
	if err := uc.notifier.SendOrderConfirmation(ctx, sale.Customer.Email, sale.Customer.Name, details); err != nil {
		uc.log.Warn().Err(err).
			Str("sale_id", sale.ID).
			Str("email", sale.Customer.Email).
			Msg("no se pudo enviar la confirmación del pedido")
		return false
	}
	return true
}
