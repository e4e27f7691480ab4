package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El descuento de stock por
// venta NO pasa por aquí (ver sales.CommitSaleUseCase); la edición directa de
// Stock es last-writer-wins y no se serializa contra los commits de venta.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() || in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Category:   in.Category,
		Barcode:    in.Barcode,
		CostPrice:  in.CostPrice,
		SalePrice:  in.SalePrice,
		Stock:      in.Stock,
		MinStock:   in.MinStock,
		ExpiryDate: in.ExpiryDate,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto campo a campo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda opcional (nombre, categoría o código de barras).
func (uc *ProductUseCase) List(ctx context.Context, search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID. Las ventas históricas no se ven
// afectadas: llevan nombre y precio snapshotted.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// StockValue devuelve el valor estimado del stock actual (Σ precio × stock).
func (uc *ProductUseCase) StockValue(ctx context.Context) (decimal.Decimal, error) {
	return uc.repo.StockValue(ctx)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Barcode:    p.Barcode,
		CostPrice:  p.CostPrice,
		SalePrice:  p.SalePrice,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		LowStock:   p.LowStock(),
		ExpiryDate: p.ExpiryDate,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
