package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,max=200"`
	Category   string          `json:"category" validate:"required,max=100"`
	Barcode    string          `json:"barcode" validate:"omitempty,max=50"`
	CostPrice  decimal.Decimal `json:"cost_price" validate:"required"`
	SalePrice  decimal.Decimal `json:"sale_price" validate:"required"`
	Stock      int64           `json:"stock" validate:"min=0"`
	MinStock   int64           `json:"min_stock" validate:"min=0"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// UpdateProductRequest entrada parcial para actualizar un producto.
// El descuento de stock por venta NO pasa por aquí: editar Stock desde el CRUD
// es last-writer-wins y está fuera de la garantía atómica del ledger.
type UpdateProductRequest struct {
	Name       *string          `json:"name,omitempty"`
	Category   *string          `json:"category,omitempty"`
	Barcode    *string          `json:"barcode,omitempty"`
	CostPrice  *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice  *decimal.Decimal `json:"sale_price,omitempty"`
	Stock      *int64           `json:"stock,omitempty"`
	MinStock   *int64           `json:"min_stock,omitempty"`
	ExpiryDate *time.Time       `json:"expiry_date,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Barcode    string          `json:"barcode,omitempty"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	Stock      int64           `json:"stock"`
	MinStock   int64           `json:"min_stock"`
	LowStock   bool            `json:"low_stock"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
