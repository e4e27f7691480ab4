package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es un registro inmutable del ledger de ventas: se crea exactamente una
// vez por commit exitoso y no tiene camino de update ni delete. ProductName y
// UnitPrice son snapshots tomados del producto antes del descuento de stock,
// para que ediciones posteriores del producto no alteren reportes históricos.
type Sale struct {
	ID          string // ULID: ordenable lexicográficamente por tiempo
	ProductID   string
	ProductName string
	Quantity    int64           // > 0
	UnitPrice   decimal.Decimal // snapshot del precio de venta
	Total       decimal.Decimal // Quantity × UnitPrice
	SoldAt      time.Time
	OwnerID     string // usuario que registró la venta
}
