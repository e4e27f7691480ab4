package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la farmacia. Stock se descuenta únicamente
// vía el commit de venta (unidad atómica) o por edición directa del CRUD; la
// edición directa es last-writer-wins y queda fuera de la garantía atómica.
type Product struct {
	ID         string
	Name       string
	Category   string
	Barcode    string
	CostPrice  decimal.Decimal // precio de compra, >= 0
	SalePrice  decimal.Decimal // precio de venta, >= 0
	Stock      int64           // unidades, nunca negativo
	MinStock   int64           // umbral de alerta de stock bajo
	ExpiryDate *time.Time
	OwnerID    string // usuario que registró el producto
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LowStock informa si el producto está en o por debajo del umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
