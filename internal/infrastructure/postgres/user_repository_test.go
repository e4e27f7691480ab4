package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble de transacción para el bootstrap
// ──────────────────────────────────────────────────────────────────────────────

// bootstrapDB emula la tabla users a nivel de conteo y registra el orden de
// los statements que ejecuta cada transacción del bootstrap.
type bootstrapDB struct {
	users int
	ops   []string
}

func (db *bootstrapDB) Begin(_ context.Context) (pgx.Tx, error) {
	return &bootstrapTx{db: db}, nil
}

func (db *bootstrapDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *bootstrapDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (db *bootstrapDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

var _ postgres.Querier = (*bootstrapDB)(nil)

type bootstrapTx struct {
	pgx.Tx
	db       *bootstrapDB
	inserted bool
}

func (t *bootstrapTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "pg_advisory_xact_lock"):
		t.db.ops = append(t.db.ops, "lock")
	case strings.Contains(sql, "INSERT INTO users"):
		t.db.ops = append(t.db.ops, "insert")
		t.inserted = true
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (t *bootstrapTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	t.db.ops = append(t.db.ops, "count")
	n := int64(t.db.users)
	return scanRow{n: n}
}

func (t *bootstrapTx) Commit(_ context.Context) error {
	if t.inserted {
		t.db.users++
	}
	t.db.ops = append(t.db.ops, "commit")
	return nil
}

func (t *bootstrapTx) Rollback(_ context.Context) error { return nil }

type scanRow struct{ n int64 }

func (r scanRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.n
	return nil
}

func adminUser(handle string) *entity.User {
	now := time.Now()
	return &entity.User{
		ID:           "usr-" + handle,
		FullName:     "Ana Silva",
		LoginHandle:  handle,
		Email:        handle + "@marjoc.local",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleAdministrator,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateFirstAdmin_TomaElLockAntesDeContar(t *testing.T) {
	db := &bootstrapDB{}
	repo := postgres.NewUserRepository(db)

	err := repo.CreateFirstAdmin(context.Background(), adminUser("ana.silva"))

	require.NoError(t, err)
	// El conteo y el insert deben correr con el advisory lock ya tomado;
	// de lo contrario dos bootstraps concurrentes parten de snapshots que
	// no se ven entre sí y ambos insertarían.
	assert.Equal(t, []string{"lock", "count", "insert", "commit"}, db.ops)
	assert.Equal(t, 1, db.users)
}

func TestCreateFirstAdmin_SegundoIntentoPierdeLaCarrera(t *testing.T) {
	db := &bootstrapDB{}
	repo := postgres.NewUserRepository(db)

	require.NoError(t, repo.CreateFirstAdmin(context.Background(), adminUser("ana.silva")))

	db.ops = nil
	err := repo.CreateFirstAdmin(context.Background(), adminUser("beto.rocha"))

	assert.ErrorIs(t, err, domain.ErrAlreadyBootstrapped)
	assert.Equal(t, []string{"lock", "count"}, db.ops, "no debe insertar ni hacer commit")
	assert.Equal(t, 1, db.users)
}
