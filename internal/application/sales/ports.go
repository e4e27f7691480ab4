package sales

import (
	"context"

	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que descuento de stock y registro
// de venta se confirman como una sola unidad durable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
