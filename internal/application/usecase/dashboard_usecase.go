package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

// DashboardUseCase arma las cifras de la pantalla inicial: totales de
// clientes y productos, alertas de stock bajo y valor estimado del stock.
type DashboardUseCase struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(customerRepo repository.CustomerRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{customerRepo: customerRepo, productRepo: productRepo}
}

// GetSummary lanza las cuatro consultas en paralelo y junta los resultados.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int64
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}

	customersCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		n, err := uc.customerRepo.Count(ctx)
		customersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.productRepo.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.productRepo.CountLowStock(ctx)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.productRepo.StockValue(ctx)
		valueCh <- valueResult{v, err}
	}()

	customers := <-customersCh
	products := <-productsCh
	lowStock := <-lowStockCh
	value := <-valueCh

	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: total de clientes: %w", customers.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", products.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", lowStock.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor de stock: %w", value.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalCustomers: customers.n,
		TotalProducts:  products.n,
		LowStockCount:  lowStock.n,
		StockValue:     value.v,
	}, nil
}
