// Package report agrega el ledger de ventas en resúmenes por período.
// Todo es función pura de sus entradas y de now: mismos datos, mismo resumen.
// Eso hace los exports reproducibles y el paquete trivialmente testeable.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// Period es la ventana de lookback del reporte.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid informa si el período es uno de los soportados.
func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// Cutoff devuelve el instante límite inferior (inclusivo) de la ventana.
// Semanal: 7 días exactos. Mensual: un mes calendario hacia atrás, igual que
// hacía la versión original del sistema (no 30 días fijos).
func (p Period) Cutoff(now time.Time) time.Time {
	if p == PeriodWeekly {
		return now.AddDate(0, 0, -7)
	}
	return now.AddDate(0, -1, 0)
}

// ProductRank es una posición del ranking por producto del período.
type ProductRank struct {
	ProductName string
	Units       int64
	Revenue     decimal.Decimal
}

// DailyPoint es un punto de la serie temporal: un día calendario con ventas.
type DailyPoint struct {
	Day     time.Time // medianoche del día, en la zona del registro
	Units   int64
	Revenue decimal.Decimal
}

// Summary es el resumen de un período, consumido por pantallas y exports.
type Summary struct {
	Period       Period
	TotalUnits   int64
	TotalRevenue decimal.Decimal
	Ranking      []ProductRank // unidades desc, nombre asc en empates
	Series       []DailyPoint  // días ascendentes; solo días con ventas
	StockUnits   int64         // Σ stock actual, independiente del período
	StockValue   decimal.Decimal
}

// Summarize construye el resumen del período a partir del ledger de ventas y
// del snapshot actual de productos. El límite inferior de la ventana es
// inclusivo: una venta exactamente en now−window entra al reporte.
func Summarize(sales []*entity.Sale, products []*entity.Product, period Period, now time.Time) Summary {
	cutoff := period.Cutoff(now)

	s := Summary{
		Period:       period,
		TotalRevenue: decimal.Zero,
		StockValue:   decimal.Zero,
	}

	type group struct {
		units   int64
		revenue decimal.Decimal
	}
	byProduct := make(map[string]*group)
	byDay := make(map[time.Time]*group)

	for _, sale := range sales {
		if sale.SoldAt.Before(cutoff) {
			continue
		}
		s.TotalUnits += sale.Quantity
		s.TotalRevenue = s.TotalRevenue.Add(sale.Total)

		g, ok := byProduct[sale.ProductName]
		if !ok {
			g = &group{revenue: decimal.Zero}
			byProduct[sale.ProductName] = g
		}
		g.units += sale.Quantity
		g.revenue = g.revenue.Add(sale.Total)

		day := dayOf(sale.SoldAt)
		d, ok := byDay[day]
		if !ok {
			d = &group{revenue: decimal.Zero}
			byDay[day] = d
		}
		d.units += sale.Quantity
		d.revenue = d.revenue.Add(sale.Total)
	}

	s.Ranking = make([]ProductRank, 0, len(byProduct))
	for name, g := range byProduct {
		s.Ranking = append(s.Ranking, ProductRank{ProductName: name, Units: g.units, Revenue: g.revenue})
	}
	sort.Slice(s.Ranking, func(i, j int) bool {
		if s.Ranking[i].Units != s.Ranking[j].Units {
			return s.Ranking[i].Units > s.Ranking[j].Units
		}
		return s.Ranking[i].ProductName < s.Ranking[j].ProductName
	})

	s.Series = make([]DailyPoint, 0, len(byDay))
	for day, g := range byDay {
		s.Series = append(s.Series, DailyPoint{Day: day, Units: g.units, Revenue: g.revenue})
	}
	sort.Slice(s.Series, func(i, j int) bool {
		return s.Series[i].Day.Before(s.Series[j].Day)
	})

	for _, p := range products {
		s.StockUnits += p.Stock
		s.StockValue = s.StockValue.Add(p.SalePrice.Mul(decimal.NewFromInt(p.Stock)))
	}

	return s
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
