package sales

import (
	"context"
	"fmt"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

// ListSalesUseCase lista el historial de ventas (solo lectura).
type ListSalesUseCase struct {
	saleRepo repository.SaleRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// List devuelve las ventas paginadas, más recientes primero.
func (uc *ListSalesUseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, dto.SaleResponse{
			ID:          s.ID,
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Quantity:    s.Quantity,
			UnitPrice:   s.UnitPrice,
			Total:       s.Total,
			SoldAt:      s.SoldAt,
		})
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
