package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellRequest entrada del commit de venta contra un producto.
type SellRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// SaleResponse registro de venta: product_name y unit_price son snapshots
// tomados al momento del commit.
type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	SoldAt      time.Time       `json:"sold_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
