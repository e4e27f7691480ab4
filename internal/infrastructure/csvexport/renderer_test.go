package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoc/farmacia-api/internal/application/reports"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/report"
	"github.com/marjoc/farmacia-api/internal/infrastructure/csvexport"
)

func TestRender_DocumentoCompleto(t *testing.T) {
	soldAt := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	in := &reports.ExportInput{
		Period:      report.PeriodWeekly,
		GeneratedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		Sales: []*entity.Sale{
			{
				ID:          "01J0",
				ProductID:   "prod-1",
				ProductName: "Paracetamol 500mg",
				Quantity:    10,
				UnitPrice:   decimal.RequireFromString("18.50"),
				Total:       decimal.RequireFromString("185.00"),
				SoldAt:      soldAt,
			},
		},
		Products: []*entity.Product{
			{
				Name:      "Paracetamol 500mg",
				Category:  "Analgésicos",
				SalePrice: decimal.RequireFromString("18.50"),
				Stock:     15,
				MinStock:  5,
			},
		},
		TotalUnits:   10,
		TotalRevenue: decimal.RequireFromString("185.00"),
		StockUnits:   15,
	}

	out, err := csvexport.NewRenderer().Render(in)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err, "la salida debe ser CSV parseable")

	require.Equal(t, []string{"Relatório de Vendas e Estoque", "Semanal", "30/08/2026 09:00"}, records[0])

	var flat []string
	for _, rec := range records {
		flat = append(flat, rec...)
	}
	assert.Contains(t, flat, "RESUMO")
	assert.Contains(t, flat, "VENDAS")
	assert.Contains(t, flat, "ESTOQUE")
	assert.Contains(t, flat, "185.00")
	assert.Contains(t, flat, "Paracetamol 500mg")
	// Valor del stock: 15 × 18.50
	assert.Contains(t, flat, "277.50")
}

func TestRender_SinVentasNiProductos(t *testing.T) {
	in := &reports.ExportInput{
		Period:       report.PeriodMonthly,
		GeneratedAt:  time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		TotalRevenue: decimal.Zero,
	}

	out, err := csvexport.NewRenderer().Render(in)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Mensual")
	assert.Contains(t, s, "RESUMO")
	assert.Contains(t, s, "VENDAS")
	assert.Contains(t, s, "ESTOQUE")
}
