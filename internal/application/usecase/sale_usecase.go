package usecase

import (
	"context"
	"time"

	"github.com/bilkro/pos-api/internal/application/dto"
	"github.com/bilkro/pos-api/internal/domain"
	"github.com/bilkro/pos-api/internal/domain/entity"
	"github.com/bilkro/pos-api/internal/domain/repository"
)

// ReceiptGenerator genera la representación PDF de un comprobante de venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}

// SaleUseCase consultas sobre ventas completadas y generación de comprobantes.
// Las ventas son inmutables: aquí no hay escrituras.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
	receipts ReceiptGenerator
}

// NewSaleUseCase construye el caso de uso. receipts puede ser nil (sin PDF).
func NewSaleUseCase(saleRepo repository.SaleRepository, receipts ReceiptGenerator) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, receipts: receipts}
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListByDateRange ventas en el rango dado (inclusive, más recientes primero).
func (uc *SaleUseCase) ListByDateRange(start, end time.Time) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

// Receipt genera el PDF del comprobante de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrNotFound
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceipt(ctx, sale)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			SKU:       item.SKU,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		UserID:        s.UserID,
		Items:         items,
		ItemCount:     s.ItemCount(),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CustomerInfo: dto.CustomerInfoRequest{
			Name:    s.Customer.Name,
			Email:   s.Customer.Email,
			Phone:   s.Customer.Phone,
			Address: s.Customer.Address,
		},
		Note:       s.Note,
		CouponCode: s.CouponCode,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
	}
}
