package repository

import (
	"context"
	"time"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para el ledger de ventas.
// Solo hay inserción y lectura: los registros son inmutables.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}
