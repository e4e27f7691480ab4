package repository

import (
	"context"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
