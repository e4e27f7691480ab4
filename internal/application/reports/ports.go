package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/report"
)

// ExportInput es la forma única que consumen los renderizadores de export.
// De aquí se derivan tanto la forma tabular (CSV) como el documento paginado
// (PDF); ambos muestran los mismos bloques con los mismos datos.
type ExportInput struct {
	Period       report.Period
	GeneratedAt  time.Time
	Sales        []*entity.Sale    // historial del período, cronológico
	Products     []*entity.Product // snapshot de stock actual
	TotalUnits   int64
	TotalRevenue decimal.Decimal
	StockUnits   int64
}

// PeriodLabel etiqueta humana del período para el encabezado del documento.
func (in *ExportInput) PeriodLabel() string {
	if in.Period == report.PeriodWeekly {
		return "Semanal"
	}
	return "Mensual"
}

// Renderer produce los bytes de un documento de reporte a partir del input
// compartido. Implementaciones: CSV (texto tabular) y PDF (maroto).
type Renderer interface {
	Render(in *ExportInput) ([]byte, error)
}
