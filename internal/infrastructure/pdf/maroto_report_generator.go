// Package pdf implementa la generación del reporte de ventas y estoque en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Marjoc Lda  │  Relatório de Vendas e Estoque       │
//	│          Período + Fecha de emisión                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Unidades vendidas / Receita / Stock actual         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Fecha | Producto | Cant | P.Unit | Total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA STOCK: Producto | Categoría | Stock | Mín | Valor     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/application/reports"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.Renderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.Renderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Render genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(in *reports.ExportInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Vendas e Estoque", true).
		WithAuthor("Marjoc Lda", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("VENDAS DO PERÍODO"))
	m.AddRows(salesHeaderRow())
	for _, r := range salesRows(in.Sales) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("ESTOQUE ATUAL"))
	m.AddRows(stockHeaderRow())
	for _, r := range stockRows(in.Products) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la farmacia (izq) y título + período + fecha (der).
func headerRow(in *reports.ExportInput) core.Row {
	fecha := in.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(6).Add(
			text.New("Marjoc Lda", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Farmácia", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("RELATÓRIO DE VENDAS E ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+in.PeriodLabel(), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Emitido em: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: los tres indicadores agregados del período.
func summaryRow(in *reports.ExportInput) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		metric("Unidades vendidas", fmt.Sprintf("%d", in.TotalUnits)),
		metric("Receita total", in.TotalRevenue.StringFixed(2)),
		metric("Unidades em estoque", fmt.Sprintf("%d", in.StockUnits)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// salesHeaderRow: cabecera de la tabla de ventas.
func salesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Data", 2, align.Left),
		h("Produto", 5, align.Left),
		h("Qtd.", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// salesRows: una fila por venta, cronológicas.
func salesRows(sales []*entity.Sale) []core.Row {
	if len(sales) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sem vendas registradas no período.", props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 1,
			}),
		))}
	}
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				s.SoldAt.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				s.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", s.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				s.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				s.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// stockHeaderRow: cabecera de la tabla de estoque.
func stockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Produto", 5, align.Left),
		h("Categoria", 3, align.Left),
		h("Estoque", 1, align.Center),
		h("Mínimo", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

// stockRows: una fila por producto del snapshot actual.
func stockRows(products []*entity.Product) []core.Row {
	if len(products) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sem produtos cadastrados.", props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 1,
			}),
		))}
	}
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		value := p.SalePrice.Mul(decimal.NewFromInt(p.Stock))
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(
				p.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				p.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.Stock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.MinStock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				value.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
