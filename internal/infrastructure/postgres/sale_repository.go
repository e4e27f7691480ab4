package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las ventas son un ledger append-only: no hay UPDATE ni DELETE.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, product_id, product_name, quantity, unit_price, total, sold_at, owner_id`

// Create registra una venta en el ledger.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, product_name, quantity, unit_price, total, sold_at, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.ProductName, sale.Quantity,
		sale.UnitPrice, sale.Total, sale.SoldAt, sale.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListSince devuelve las ventas con sold_at >= since, más antiguas primero.
func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sold_at >= $1 ORDER BY sold_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list sales since: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// List devuelve las ventas paginadas, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sold_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity,
			&s.UnitPrice, &s.Total, &s.SoldAt, &s.OwnerID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
