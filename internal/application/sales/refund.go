package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// RefundSaleUseCase procesa devoluciones totales o parciales, restituyendo
// el stock de las líneas devueltas en la misma transacción.
type RefundSaleUseCase struct {
	tx TxRunner
}

// NewRefundSaleUseCase crea el caso de uso.
func NewRefundSaleUseCase(tx TxRunner) *RefundSaleUseCase {
	return &RefundSaleUseCase{tx: tx}
}

// Execute procesa la devolución de saleID. Con req.Items vacío la devolución
// es total; con líneas, solo se restituyen esas cantidades. Una venta ya
// reembolsada o cancelada no admite una segunda devolución.
func (uc *RefundSaleUseCase) Execute(ctx context.Context, saleID string, req dto.RefundSaleRequest, actor string) (*entity.Sale, error) {
	if saleID == "" {
		return nil, &domain.ValidationError{Field: "id", Message: "requerido"}
	}
	for _, it := range req.Items {
		if it.ProductID == "" {
			return nil, &domain.ValidationError{Field: "items.product_id", Message: "requerido"}
		}
		if it.Quantity < 1 {
			return nil, &domain.ValidationError{Field: "items.quantity", Message: "debe ser al menos 1"}
		}
	}

	var result *entity.Sale
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
		_ repository.CounterRepository,
	) error {
		sale, err := sales.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale.Status == entity.SaleStatusRefunded || sale.Status == entity.SaleStatusCancelled {
			return domain.ErrAlreadyRefunded
		}

		for _, line := range resolveRefundQuantities(sale, req.Items) {
			product, err := products.GetForUpdate(line.ProductID)
			if err != nil {
				// El producto pudo haberse eliminado después de la venta; la
				// devolución contable procede igual.
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return err
			}
			if err := products.UpdateQuantity(product.ID, product.Quantity+line.Quantity, actor); err != nil {
				return err
			}
		}

		now := time.Now()
		sale.Status = entity.SaleStatusRefunded
		sale.PaymentStatus = entity.PaymentStatusRefunded
		sale.RefundReason = req.Reason
		sale.RefundedAt = &now
		if req.Reason != "" {
			// El motivo también queda en las notas, como rastro legible en la
			// factura histórica.
			if sale.Notes != "" {
				sale.Notes += "\n"
			}
			sale.Notes += "Reembolso procesado: " + req.Reason
		}
		sale.UpdatedBy = actor
		sale.UpdatedAt = now

		if err := sales.Update(sale); err != nil {
			return err
		}
		result = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("invoice", result.InvoiceNumber).
		Str("actor", actor).
		Bool("partial", len(req.Items) > 0).
		Msg("venta reembolsada")

	return result, nil
}

type refundLine struct {
	ProductID string
	Quantity  int
}

// resolveRefundQuantities determina cuánto stock restituir por producto.
// Devolución total: todas las líneas de la venta. Parcial: las cantidades
// pedidas; las líneas que no corresponden a la venta (producto ajeno o
// cantidad mayor a la vendida) se ignoran sin abortar el resto.
// Las líneas salen ordenadas por ProductID para bloquear filas en orden
// estable, igual que el registro de ventas.
func resolveRefundQuantities(sale *entity.Sale, items []dto.RefundItemRequest) []refundLine {
	sold := make(map[string]int, len(sale.Items))
	for _, it := range sale.Items {
		sold[it.ProductID] += it.Quantity
	}

	restore := make(map[string]int, len(sold))
	if len(items) == 0 {
		for id, qty := range sold {
			restore[id] = qty
		}
	} else {
		requested := make(map[string]int, len(items))
		for _, it := range items {
			requested[it.ProductID] += it.Quantity
		}
		for productID, qty := range requested {
			soldQty, ok := sold[productID]
			if !ok || qty > soldQty {
				continue
			}
			restore[productID] = qty
		}
	}

	out := make([]refundLine, 0, len(restore))
	for productID, qty := range restore {
		out = append(out, refundLine{ProductID: productID, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
