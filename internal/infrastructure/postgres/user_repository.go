package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, full_name, login_handle, email, password_hash, role, status, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, full_name, login_handle, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.FullName, user.LoginHandle, user.Email, user.PasswordHash,
		string(user.Role), user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHandleTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// txBeginner lo satisfacen *pgxpool.Pool y pgx.Tx; permite que el bootstrap
// abra su propia transacción sin acoplar el repo al pool.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// bootstrapLockKey clave fija del advisory lock que serializa el bootstrap.
const bootstrapLockKey = int64(7431001)

// CreateFirstAdmin inserta el primer usuario solo si la tabla está vacía.
// Un INSERT ... WHERE NOT EXISTS suelto no basta bajo READ COMMITTED: cada
// statement concurrente parte de un snapshot que no ve la fila del otro y
// ambos insertarían. El advisory lock transaccional serializa el
// check-then-act completo; el conteo corre con el lock ya tomado y por eso
// ve el commit del ganador.
func (r *UserRepo) CreateFirstAdmin(ctx context.Context, user *entity.User) error {
	b, ok := r.q.(txBeginner)
	if !ok {
		return fmt.Errorf("create first admin: querier sin soporte de transacciones")
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bootstrap: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bootstrapLockKey); err != nil {
		return fmt.Errorf("bootstrap lock: %w", err)
	}
	var n int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return domain.ErrAlreadyBootstrapped
	}

	query := `
		INSERT INTO users (id, full_name, login_handle, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(ctx, query,
		user.ID, user.FullName, user.LoginHandle, user.Email, user.PasswordHash,
		string(user.Role), user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrHandleTaken
		}
		return fmt.Errorf("insert first admin: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bootstrap: %w", err)
	}
	return nil
}

// Count cuenta las identidades registradas.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// GetByID obtiene un usuario por ID. Devuelve nil sin error si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get user by id")
}

// GetByHandle obtiene un usuario por login handle (case-sensitive).
func (r *UserRepo) GetByHandle(ctx context.Context, handle string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_handle = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, handle), "get user by handle")
}

// List lista usuarios con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var role string
		if err := rows.Scan(&u.ID, &u.FullName, &u.LoginHandle, &u.Email, &u.PasswordHash,
			&role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = entity.Role(role)
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.FullName, &u.LoginHandle, &u.Email, &u.PasswordHash,
		&role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = entity.Role(role)
	return &u, nil
}
