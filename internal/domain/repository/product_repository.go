package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción; serializa los commits por producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// DecrementStock descuenta qty de forma condicional
	// (UPDATE ... WHERE stock >= qty). Devuelve false si la condición falló,
	// sin tocar la fila: nunca hay descuento parcial ni stock negativo.
	DecrementStock(ctx context.Context, id string, qty int64) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	// StockValue devuelve Σ sale_price × stock sobre todos los productos.
	StockValue(ctx context.Context) (decimal.Decimal, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
