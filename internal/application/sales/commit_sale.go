// Package sales implementa el commit de venta: la única operación que muta
// stock y ledger a la vez. El commit debe parecer atómico para cualquier otro
// lector; no existe estado intermedio persistido.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
	"github.com/marjoc/farmacia-api/pkg/ids"
	"github.com/marjoc/farmacia-api/pkg/logger"
	"github.com/marjoc/farmacia-api/pkg/metrics"
)

// CommitSaleUseCase registra ventas de forma transaccional: bloquea la fila
// del producto (SELECT FOR UPDATE), descuenta stock con update condicional y
// agrega el registro de venta, todo dentro de una transacción.
type CommitSaleUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(txRunner TxRunner, log *logger.Logger) *CommitSaleUseCase {
	return &CommitSaleUseCase{txRunner: txRunner, log: log}
}

// Commit valida y confirma una venta de qty unidades del producto.
//
// Efectos, juntos o ninguno:
//   - product.stock -= qty
//   - se agrega un registro de venta con nombre y precio snapshotted del
//     producto ANTES del descuento
//
// La serialización por producto la da el row lock: dos commits concurrentes
// sobre el mismo producto se ordenan, y el segundo revalida contra el stock
// ya descontado. El update condicional (stock >= qty) es la última defensa:
// nunca hay sobreventa ni descuento parcial.
//
// No es idempotente: dos commits idénticos producen dos ventas y doble
// descuento. Ningún error se reintenta automáticamente, porque reintentar una
// cantidad contra stock ya desactualizado no es seguro.
func (uc *CommitSaleUseCase) Commit(ctx context.Context, productID string, qty int64, actingUserID string) (*entity.Sale, error) {
	if qty <= 0 {
		metrics.SaleRejected("invalid_quantity")
		return nil, domain.ErrInvalidQuantity
	}
	if productID == "" {
		metrics.SaleRejected("product_not_found")
		return nil, domain.ErrProductNotFound
	}

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if qty > product.Stock {
			return domain.ErrInsufficientStock
		}

		// Snapshot de identidad y precio antes de tocar el stock.
		now := time.Now()
		sale = &entity.Sale{
			ID:          ids.NewSaleID(now),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    qty,
			UnitPrice:   product.SalePrice,
			Total:       product.SalePrice.Mul(decimal.NewFromInt(qty)),
			SoldAt:      now,
			OwnerID:     actingUserID,
		}

		ok, err := productRepo.DecrementStock(ctx, product.ID, qty)
		if err != nil {
			return fmt.Errorf("descontar stock: %w", err)
		}
		if !ok {
			// La condición stock >= qty falló pese al lock; no se tocó la fila.
			return domain.ErrInsufficientStock
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			// El rollback de la tx revierte el descuento (acción compensatoria);
			// se escala al operador porque un descuento sin venta es el fallo
			// que este sistema no tolera.
			uc.log.Error().
				Err(err).
				Str("product_id", product.ID).
				Int64("quantity", qty).
				Str("user_id", actingUserID).
				Msg("append de venta falló tras descontar stock; descuento revertido")
			metrics.LedgerInconsistency()
			return domain.ErrLedgerInconsistent
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			metrics.SaleRejected("product_not_found")
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.SaleRejected("insufficient_stock")
		case errors.Is(err, domain.ErrLedgerInconsistent):
			metrics.SaleRejected("ledger_inconsistent")
		}
		return nil, err
	}

	metrics.SaleCommitted()
	return sale, nil
}
