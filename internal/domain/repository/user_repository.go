package repository

import (
	"context"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateFirstAdmin inserta el primer usuario solo si la tabla está vacía.
	// El check-then-act del bootstrap debe ser atómico frente a llamadas
	// concurrentes. Devuelve domain.ErrAlreadyBootstrapped si ya existe algún
	// usuario.
	CreateFirstAdmin(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByHandle(ctx context.Context, handle string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
