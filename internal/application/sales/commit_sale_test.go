package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoc/farmacia-api/internal/application/sales"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
	"github.com/marjoc/farmacia-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore es el estado compartido que las transacciones falsas mutan.
type memStore struct {
	products map[string]*entity.Product
	sales    []*entity.Sale

	failSaleInsert bool // simula el fallo del append post-descuento
}

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) DecrementStock(_ context.Context, id string, qty int64) (bool, error) {
	p, ok := r.store.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Count(_ context.Context) (int64, error)               { return 0, nil }
func (r *memProductRepo) CountLowStock(_ context.Context) (int64, error)       { return 0, nil }
func (r *memProductRepo) StockValue(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *memProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (r *memProductRepo) Delete(_ context.Context, _ string) error          { return nil }

type memSaleRepo struct {
	store *memStore
}

func (r *memSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	if r.store.failSaleInsert {
		return errors.New("insert sale: conexión perdida")
	}
	r.store.sales = append(r.store.sales, s)
	return nil
}

func (r *memSaleRepo) ListSince(_ context.Context, _ time.Time) ([]*entity.Sale, error) {
	return r.store.sales, nil
}
func (r *memSaleRepo) List(_ context.Context, _, _ int) ([]*entity.Sale, error) {
	return r.store.sales, nil
}

// memTxRunner emula la transacción: un mutex serializa los commits (el
// equivalente del row lock) y en caso de error restaura el snapshot del
// estado, como haría el rollback.
type memTxRunner struct {
	mu    sync.Mutex
	store *memStore
}

func (tr *memTxRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.SaleRepository) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	snapProducts := make(map[string]*entity.Product, len(tr.store.products))
	for id, p := range tr.store.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapSales := make([]*entity.Sale, len(tr.store.sales))
	copy(snapSales, tr.store.sales)

	err := fn(&memProductRepo{store: tr.store}, &memSaleRepo{store: tr.store})
	if err != nil {
		tr.store.products = snapProducts
		tr.store.sales = snapSales
	}
	return err
}

func newFixture(products ...*entity.Product) (*memStore, *sales.CommitSaleUseCase) {
	store := &memStore{products: map[string]*entity.Product{}}
	for _, p := range products {
		store.products[p.ID] = p
	}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := sales.NewCommitSaleUseCase(&memTxRunner{store: store}, log)
	return store, uc
}

func paracetamol() *entity.Product {
	return &entity.Product{
		ID:        "prod-1",
		Name:      "Paracetamol 500mg",
		Category:  "Analgésicos",
		SalePrice: decimal.RequireFromString("18.50"),
		Stock:     25,
		MinStock:  5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_DescuentaStockYRegistraVenta(t *testing.T) {
	store, uc := newFixture(paracetamol())

	sale, err := uc.Commit(context.Background(), "prod-1", 10, "user-1")
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, int64(15), store.products["prod-1"].Stock, "stock debe quedar en 15")
	require.Len(t, store.sales, 1)

	got := store.sales[0]
	assert.Equal(t, "prod-1", got.ProductID)
	assert.Equal(t, "Paracetamol 500mg", got.ProductName, "la venta lleva el nombre snapshotted")
	assert.Equal(t, int64(10), got.Quantity)
	assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("18.50")))
	assert.True(t, got.Total.Equal(decimal.RequireFromString("185.00")), "total = 10 × 18.50")
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "user-1", got.OwnerID)
}

func TestCommit_StockInsuficiente_NoCambiaNada(t *testing.T) {
	store, uc := newFixture(paracetamol())

	// Primera venta deja el stock en 15; la segunda pide más de lo que queda.
	_, err := uc.Commit(context.Background(), "prod-1", 10, "user-1")
	require.NoError(t, err)

	sale, err := uc.Commit(context.Background(), "prod-1", 20, "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, sale)

	assert.Equal(t, int64(15), store.products["prod-1"].Stock, "el stock no debe cambiar")
	assert.Len(t, store.sales, 1, "no debe registrarse una segunda venta")
}

func TestCommit_CantidadInvalida(t *testing.T) {
	store, uc := newFixture(paracetamol())

	for _, qty := range []int64{0, -1, -100} {
		sale, err := uc.Commit(context.Background(), "prod-1", qty, "user-1")
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Nil(t, sale)
	}
	assert.Equal(t, int64(25), store.products["prod-1"].Stock)
	assert.Empty(t, store.sales)
}

func TestCommit_ProductoInexistente(t *testing.T) {
	_, uc := newFixture(paracetamol())

	sale, err := uc.Commit(context.Background(), "no-existe", 1, "user-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, sale)
}

// No es idempotente: el mismo commit dos veces descuenta dos veces.
func TestCommit_DobleCommitDescuentaDosVeces(t *testing.T) {
	store, uc := newFixture(paracetamol())

	_, err := uc.Commit(context.Background(), "prod-1", 10, "user-1")
	require.NoError(t, err)
	_, err = uc.Commit(context.Background(), "prod-1", 10, "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(5), store.products["prod-1"].Stock)
	assert.Len(t, store.sales, 2)
}

// Dos commits concurrentes cuya suma excede el stock: exactamente uno gana.
func TestCommit_ConcurrenciaSobreElMismoProducto(t *testing.T) {
	store, uc := newFixture(paracetamol()) // stock 25

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, qty := range []int64{20, 15} {
		wg.Add(1)
		go func(i int, qty int64) {
			defer wg.Done()
			_, errs[i] = uc.Commit(context.Background(), "prod-1", qty, "user-1")
		}(i, qty)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un commit debe ganar")
	assert.Equal(t, 1, insufficientCount, "el otro debe rechazarse por stock")
	assert.Len(t, store.sales, 1)

	// El stock final refleja solo la venta ganadora.
	remaining := store.products["prod-1"].Stock
	assert.True(t, remaining == 5 || remaining == 10, "stock final: 25 - 20 o 25 - 15, fue %d", remaining)
	assert.Equal(t, int64(25)-store.sales[0].Quantity, remaining)
}

// Si el append de la venta falla después del descuento, el rollback lo revierte
// y el error se reporta como inconsistencia de ledger.
func TestCommit_AppendFalla_DescuentoRevertido(t *testing.T) {
	store, uc := newFixture(paracetamol())
	store.failSaleInsert = true

	sale, err := uc.Commit(context.Background(), "prod-1", 10, "user-1")
	assert.ErrorIs(t, err, domain.ErrLedgerInconsistent)
	assert.Nil(t, sale)

	assert.Equal(t, int64(25), store.products["prod-1"].Stock, "el descuento debe revertirse")
	assert.Empty(t, store.sales)
}

// Vender exactamente todo el stock es válido y deja el stock en cero.
func TestCommit_VentaDelStockCompleto(t *testing.T) {
	store, uc := newFixture(paracetamol())

	sale, err := uc.Commit(context.Background(), "prod-1", 25, "user-1")
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, int64(0), store.products["prod-1"].Stock)
}
