// Package csvexport implementa la renderización del reporte de ventas y
// estoque como CSV plano, con los mismos bloques que la versión PDF.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/application/reports"
)

var _ reports.Renderer = (*Renderer)(nil)

// Renderer implementa reports.Renderer produciendo texto CSV (UTF-8, coma).
type Renderer struct{}

// NewRenderer construye el renderizador CSV.
func NewRenderer() *Renderer { return &Renderer{} }

// Render genera el CSV del reporte y devuelve sus bytes.
//
// Estructura del documento (tres bloques separados por línea en blanco):
//
//	Relatório de Vendas e Estoque;período;fecha
//	RESUMO        — unidades vendidas, receita, estoque
//	VENDAS        — una fila por venta del período
//	ESTOQUE       — una fila por producto del snapshot
func (r *Renderer) Render(in *reports.ExportInput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Relatório de Vendas e Estoque", in.PeriodLabel(), in.GeneratedAt.Format("02/01/2006 15:04")},
		{},
		{"RESUMO"},
		{"Unidades vendidas", fmt.Sprintf("%d", in.TotalUnits)},
		{"Receita total", in.TotalRevenue.StringFixed(2)},
		{"Unidades em estoque", fmt.Sprintf("%d", in.StockUnits)},
		{},
		{"VENDAS"},
		{"Data", "Produto", "Quantidade", "Preço unitário", "Total"},
	}
	for _, s := range in.Sales {
		records = append(records, []string{
			s.SoldAt.Format("02/01/2006"),
			s.ProductName,
			fmt.Sprintf("%d", s.Quantity),
			s.UnitPrice.StringFixed(2),
			s.Total.StringFixed(2),
		})
	}

	records = append(records,
		[]string{},
		[]string{"ESTOQUE"},
		[]string{"Produto", "Categoria", "Estoque", "Mínimo", "Valor"},
	)
	for _, p := range in.Products {
		value := p.SalePrice.Mul(decimal.NewFromInt(p.Stock))
		records = append(records, []string{
			p.Name,
			p.Category,
			fmt.Sprintf("%d", p.Stock),
			fmt.Sprintf("%d", p.MinStock),
			value.StringFixed(2),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv: escribir registros: %w", err)
	}
	return buf.Bytes(), nil
}
