package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, barcode, cost_price, sale_price, stock, min_stock, expiry_date, owner_id, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, barcode, cost_price, sale_price, stock, min_stock, expiry_date, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Barcode,
		product.CostPrice, product.SalePrice, product.Stock, product.MinStock,
		product.ExpiryDate, product.OwnerID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.q.QueryRow(ctx, query, id), "get product")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Serializa los commits de venta por producto dentro de una transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return scanProduct(r.q.QueryRow(ctx, query, id), "get product for update")
}

// DecrementStock descuenta qty solo si hay stock suficiente
// (UPDATE condicional). Devuelve false si la condición falló: la fila no se
// tocó y el stock nunca queda negativo ni parcialmente descontado.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int64) (bool, error) {
	query := `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List lista productos con búsqueda opcional por nombre, categoría o código de barras.
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR category ILIKE $1 OR barcode LIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListAll devuelve el snapshot completo de productos (para reportes).
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Count cuenta los productos registrados.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStock cuenta productos en o bajo su umbral mínimo.
func (r *ProductRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock <= min_stock`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// StockValue devuelve Σ sale_price × stock (cero si no hay productos).
func (r *ProductRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	query := `SELECT COALESCE(SUM(sale_price * stock), 0) FROM products`
	if err := r.q.QueryRow(ctx, query).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	return v, nil
}

// Update actualiza un producto (last-writer-wins; fuera de la garantía del ledger).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, barcode = $4, cost_price = $5,
			sale_price = $6, stock = $7, min_stock = $8, expiry_date = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Barcode, product.CostPrice,
		product.SalePrice, product.Stock, product.MinStock, product.ExpiryDate, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Barcode, &p.CostPrice, &p.SalePrice,
		&p.Stock, &p.MinStock, &p.ExpiryDate, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Barcode, &p.CostPrice, &p.SalePrice,
			&p.Stock, &p.MinStock, &p.ExpiryDate, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
