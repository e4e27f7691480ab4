package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO cifras del dashboard: totales de clientes y productos,
// productos bajo el umbral mínimo y valor estimado del stock actual.
type DashboardSummaryDTO struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	StockValue     decimal.Decimal `json:"stock_value"`
}
