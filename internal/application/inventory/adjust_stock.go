// Package inventory contiene los ajustes manuales de stock (conteos físicos,
// mermas, recepciones).
package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// Operaciones de ajuste admitidas.
const (
	OpSet      = "set"
	OpAdd      = "add"
	OpSubtract = "subtract"
)

// AdjustStockUseCase aplica ajustes manuales de stock con la fila bloqueada,
// para no pisar ventas concurrentes.
type AdjustStockUseCase struct {
	tx sales.TxRunner
}

// NewAdjustStockUseCase crea el caso de uso.
func NewAdjustStockUseCase(tx sales.TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{tx: tx}
}

// Execute aplica el ajuste sobre productID. subtract por debajo de cero
// satura en cero en lugar de fallar (conteos físicos contra stock desfasado).
func (uc *AdjustStockUseCase) Execute(ctx context.Context, productID string, req dto.AdjustStockRequest, actor string) (*dto.AdjustStockResponse, error) {
	switch req.Operation {
	case OpSet, OpAdd, OpSubtract:
	default:
		return nil, &domain.ValidationError{Field: "operation", Message: "debe ser set, add o subtract"}
	}
	if req.Quantity < 0 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "no puede ser negativa"}
	}

	var resp *dto.AdjustStockResponse
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.CounterRepository,
	) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}

		previous := product.Quantity
		var next int
		switch req.Operation {
		case OpSet:
			next = req.Quantity
		case OpAdd:
			next = previous + req.Quantity
		case OpSubtract:
			next = previous - req.Quantity
			if next < 0 {
				next = 0
			}
		}

		if err := products.UpdateQuantity(product.ID, next, actor); err != nil {
			return err
		}

		resp = &dto.AdjustStockResponse{
			ProductID:        product.ID,
			SKU:              product.SKU,
			PreviousQuantity: previous,
			NewQuantity:      next,
			Operation:        req.Operation,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", resp.ProductID).
		Str("operation", resp.Operation).
		Int("previous", resp.PreviousQuantity).
		Int("new", resp.NewQuantity).
		Str("reason", req.Reason).
		Str("actor", actor).
		Msg("stock ajustado")

	return resp, nil
}
