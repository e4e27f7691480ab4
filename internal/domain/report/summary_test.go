package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/report"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func sale(name string, qty int64, price string, soldAt time.Time) *entity.Sale {
	p := decimal.RequireFromString(price)
	return &entity.Sale{
		ID:          "sale-" + name + soldAt.Format("20060102150405"),
		ProductID:   "prod-" + name,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   p,
		Total:       p.Mul(decimal.NewFromInt(qty)),
		SoldAt:      soldAt,
	}
}

func product(name string, stock int64, price string) *entity.Product {
	return &entity.Product{
		ID:        "prod-" + name,
		Name:      name,
		SalePrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func TestSummarize_SinDatos(t *testing.T) {
	s := report.Summarize(nil, nil, report.PeriodWeekly, testNow)

	assert.Equal(t, int64(0), s.TotalUnits)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.Empty(t, s.Ranking)
	assert.Empty(t, s.Series)
	assert.Equal(t, int64(0), s.StockUnits)
	assert.True(t, s.StockValue.IsZero())
}

func TestSummarize_TotalesDelPeriodo(t *testing.T) {
	sales := []*entity.Sale{
		sale("Paracetamol", 10, "18.50", testNow.AddDate(0, 0, -1)),
		sale("Ibuprofeno", 5, "22.00", testNow.AddDate(0, 0, -2)),
		sale("Paracetamol", 3, "18.50", testNow.AddDate(0, 0, -3)),
	}

	s := report.Summarize(sales, nil, report.PeriodWeekly, testNow)

	assert.Equal(t, int64(18), s.TotalUnits)
	// 13×18.50 + 5×22.00 = 240.50 + 110.00
	assert.True(t, s.TotalRevenue.Equal(decimal.RequireFromString("350.50")),
		"receita total fue %s", s.TotalRevenue)
}

// El límite inferior de la ventana es inclusivo: una venta exactamente en
// now−7d entra; un instante antes ya no.
func TestSummarize_LimiteInferiorInclusivo(t *testing.T) {
	cutoff := testNow.AddDate(0, 0, -7)
	sales := []*entity.Sale{
		sale("EnElLimite", 1, "10.00", cutoff),
		sale("UnInstanteAntes", 1, "10.00", cutoff.Add(-time.Nanosecond)),
	}

	s := report.Summarize(sales, nil, report.PeriodWeekly, testNow)

	assert.Equal(t, int64(1), s.TotalUnits)
	require.Len(t, s.Ranking, 1)
	assert.Equal(t, "EnElLimite", s.Ranking[0].ProductName)
}

// Mensual es un mes calendario hacia atrás, no 30 días fijos.
func TestSummarize_VentanaMensualCalendario(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	cutoff := report.PeriodMonthly.Cutoff(now)

	// AddDate(0,-1,0) sobre 31 de marzo normaliza a 3 de marzo (febrero de 28).
	assert.Equal(t, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), cutoff)
}

func TestSummarize_RankingPorUnidadesYNombre(t *testing.T) {
	sales := []*entity.Sale{
		sale("Vitamina C", 4, "12.00", testNow.AddDate(0, 0, -1)),
		sale("Aspirina", 9, "8.00", testNow.AddDate(0, 0, -1)),
		sale("Vitamina C", 5, "12.00", testNow.AddDate(0, 0, -2)),
		sale("Dipirona", 9, "6.50", testNow.AddDate(0, 0, -2)),
	}

	s := report.Summarize(sales, nil, report.PeriodWeekly, testNow)

	require.Len(t, s.Ranking, 3)
	// Vitamina C acumula 9; empate triple a 9 unidades se ordena por nombre.
	assert.Equal(t, "Aspirina", s.Ranking[0].ProductName)
	assert.Equal(t, "Dipirona", s.Ranking[1].ProductName)
	assert.Equal(t, "Vitamina C", s.Ranking[2].ProductName)
	for _, r := range s.Ranking {
		assert.Equal(t, int64(9), r.Units)
	}
}

func TestSummarize_SerieDiariaAscendente(t *testing.T) {
	sales := []*entity.Sale{
		sale("A", 2, "10.00", testNow.AddDate(0, 0, -1)),
		sale("B", 1, "10.00", testNow.AddDate(0, 0, -4)),
		sale("C", 3, "10.00", testNow.AddDate(0, 0, -4).Add(3*time.Hour)),
	}

	s := report.Summarize(sales, nil, report.PeriodWeekly, testNow)

	require.Len(t, s.Series, 2, "solo días con ventas, agrupados por día calendario")
	assert.True(t, s.Series[0].Day.Before(s.Series[1].Day), "días ascendentes")
	assert.Equal(t, int64(4), s.Series[0].Units, "dos ventas del mismo día se agrupan")
	assert.Equal(t, int64(2), s.Series[1].Units)
}

func TestSummarize_StockIndependienteDelPeriodo(t *testing.T) {
	products := []*entity.Product{
		product("Paracetamol", 15, "18.50"),
		product("Ibuprofeno", 0, "22.00"),
		product("Vitamina C", 40, "12.00"),
	}

	s := report.Summarize(nil, products, report.PeriodWeekly, testNow)

	assert.Equal(t, int64(55), s.StockUnits)
	// 15×18.50 + 0 + 40×12.00 = 277.50 + 480.00
	assert.True(t, s.StockValue.Equal(decimal.RequireFromString("757.50")),
		"valor de stock fue %s", s.StockValue)
}
