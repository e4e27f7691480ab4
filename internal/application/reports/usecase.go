// Package reports expone los resúmenes por período y el export a CSV/PDF.
// Lee el ledger de ventas y el snapshot de productos; nunca toca stock.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/report"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

// Formatos de export soportados.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ReportUseCase arma resúmenes y exports del período.
type ReportUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	csvRenderer Renderer
	pdfRenderer Renderer
}

// NewReportUseCase construye el caso de uso con ambos renderizadores.
func NewReportUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	csvRenderer Renderer,
	pdfRenderer Renderer,
) *ReportUseCase {
	return &ReportUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		csvRenderer: csvRenderer,
		pdfRenderer: pdfRenderer,
	}
}

// GetSummary construye el resumen del período. Hace exactamente un fetch de
// ventas y uno de productos y agrega sobre esos dos cortes consistentes; la
// agregación nunca mezcla resultados de fetches distintos.
func (uc *ReportUseCase) GetSummary(ctx context.Context, period report.Period, now time.Time) (*dto.ReportSummaryResponse, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidInput
	}
	sales, err := uc.saleRepo.ListSince(ctx, period.Cutoff(now))
	if err != nil {
		return nil, fmt.Errorf("reportes: ventas del período: %w", err)
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: snapshot de productos: %w", err)
	}

	s := report.Summarize(sales, products, period, now)

	ranking := make([]dto.ProductRankDTO, 0, len(s.Ranking))
	for _, r := range s.Ranking {
		ranking = append(ranking, dto.ProductRankDTO{ProductName: r.ProductName, Units: r.Units, Revenue: r.Revenue})
	}
	series := make([]dto.DailyPointDTO, 0, len(s.Series))
	for _, p := range s.Series {
		series = append(series, dto.DailyPointDTO{Day: p.Day, Units: p.Units, Revenue: p.Revenue})
	}
	return &dto.ReportSummaryResponse{
		Period:       string(s.Period),
		TotalUnits:   s.TotalUnits,
		TotalRevenue: s.TotalRevenue,
		Ranking:      ranking,
		Series:       series,
		StockUnits:   s.StockUnits,
		StockValue:   s.StockValue,
	}, nil
}

// Export genera el documento del período en el formato pedido y devuelve
// bytes, nombre de archivo y content type.
func (uc *ReportUseCase) Export(ctx context.Context, period report.Period, format string, now time.Time) ([]byte, string, string, error) {
	if !period.Valid() {
		return nil, "", "", domain.ErrInvalidInput
	}
	var renderer Renderer
	var contentType string
	switch format {
	case FormatCSV:
		renderer, contentType = uc.csvRenderer, "text/csv; charset=utf-8"
	case FormatPDF:
		renderer, contentType = uc.pdfRenderer, "application/pdf"
	default:
		return nil, "", "", domain.ErrInvalidInput
	}

	in, err := uc.buildExport(ctx, period, now)
	if err != nil {
		return nil, "", "", err
	}
	doc, err := renderer.Render(in)
	if err != nil {
		return nil, "", "", fmt.Errorf("reportes: render %s: %w", format, err)
	}
	name := fmt.Sprintf("relatorio-%s-%s.%s", period, now.Format("2006-01-02"), format)
	return doc, name, contentType, nil
}

// buildExport hace el par de fetches del período y arma el input compartido
// por ambos renderizadores.
func (uc *ReportUseCase) buildExport(ctx context.Context, period report.Period, now time.Time) (*ExportInput, error) {
	sales, err := uc.saleRepo.ListSince(ctx, period.Cutoff(now))
	if err != nil {
		return nil, fmt.Errorf("reportes: ventas del período: %w", err)
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: snapshot de productos: %w", err)
	}
	s := report.Summarize(sales, products, period, now)
	return &ExportInput{
		Period:       period,
		GeneratedAt:  now,
		Sales:        sales,
		Products:     products,
		TotalUnits:   s.TotalUnits,
		TotalRevenue: s.TotalRevenue,
		StockUnits:   s.StockUnits,
	}, nil
}
