package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRankDTO posición del ranking por producto del período.
type ProductRankDTO struct {
	ProductName string          `json:"product_name"`
	Units       int64           `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// DailyPointDTO punto de la serie temporal (un día calendario con ventas).
type DailyPointDTO struct {
	Day     time.Time       `json:"day"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReportSummaryResponse resumen del período para la pantalla de reportes.
type ReportSummaryResponse struct {
	Period       string           `json:"period"`
	TotalUnits   int64            `json:"total_units"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	Ranking      []ProductRankDTO `json:"ranking"`
	Series       []DailyPointDTO  `json:"series"`
	StockUnits   int64            `json:"stock_units"`
	StockValue   decimal.Decimal  `json:"stock_value"`
}
