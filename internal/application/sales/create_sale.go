package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CreateSaleUseCase registra una venta: valida el carrito, resuelve precios,
// asigna el número de factura y descuenta stock, todo en una transacción.
type CreateSaleUseCase struct {
	tx TxRunner
}

// NewCreateSaleUseCase crea el caso de uso.
func NewCreateSaleUseCase(tx TxRunner) *CreateSaleUseCase {
	return &CreateSaleUseCase{tx: tx}
}

// Execute procesa la venta. salesPerson es el ID del usuario autenticado que
// la registra. Si cualquier línea falla, no se persiste nada ni se toca stock.
func (uc *CreateSaleUseCase) Execute(ctx context.Context, req dto.CreateSaleRequest, salesPerson string) (*entity.Sale, error) {
	if req.PaymentStatus == "" {
		req.PaymentStatus = entity.PaymentStatusPaid
	}
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID: uuid.NewString(),
		Customer: entity.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		TaxPercentage: req.TaxPercentage,
		Notes:         req.Notes,
		Status:        entity.SaleStatusCompleted,
		SaleDate:      now,
		SalesPerson:   salesPerson,
		CreatedBy:     salesPerson,
		UpdatedBy:     salesPerson,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
		counters repository.CounterRepository,
	) error {
		// Bloquear productos en orden estable para evitar deadlocks entre
		// ventas concurrentes con carritos que se solapan.
		lines := consolidateItems(req.Items)

		items := make([]entity.SaleItem, 0, len(lines))
		for _, line := range lines {
			product, err := products.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return &domain.ProductUnavailableError{ProductName: product.Name, Status: product.Status}
			}
			if product.Quantity < line.Quantity {
				return &domain.InsufficientStockError{
					ProductName: product.Name,
					SKU:         product.SKU,
					Available:   product.Quantity,
					Requested:   line.Quantity,
				}
			}

			unitPrice := product.SellingPrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			discount := product.DiscountPercentage
			if line.DiscountPercentage != nil {
				discount = *line.DiscountPercentage
			}

			items = append(items, entity.SaleItem{
				ProductID:          product.ID,
				ProductName:        product.Name,
				SKU:                product.SKU,
				Quantity:           line.Quantity,
				UnitPrice:          unitPrice,
				DiscountPercentage: discount,
			})

			if err := products.UpdateQuantity(product.ID, product.Quantity-line.Quantity, salesPerson); err != nil {
				return err
			}
		}

		sale.Items = items
		applyPayment(sale, req.AmountPaid)
		sale.ComputeTotals()

		invoice, err := nextInvoiceNumber(counters, now)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = invoice

		return sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("invoice", sale.InvoiceNumber).
		Str("sales_person", salesPerson).
		Str("total", sale.TotalAmount.String()).
		Int("items", len(sale.Items)).
		Msg("venta registrada")

	return sale, nil
}

// applyPayment fija AmountPaid antes de recalcular totales. Con estado "paid"
// y sin monto explícito, el monto pagado es el total (se resuelve después de
// ComputeTotals porque depende del total).
func applyPayment(sale *entity.Sale, amountPaid *decimal.Decimal) {
	if amountPaid != nil {
		sale.AmountPaid = *amountPaid
		return
	}
	if sale.PaymentStatus == entity.PaymentStatusPaid {
		// ComputeTotals usa AmountPaid solo para AmountDue; calculamos el
		// total provisional con AmountPaid=0 y luego igualamos.
		sale.AmountPaid = decimal.Zero
		sale.ComputeTotals()
		sale.AmountPaid = sale.TotalAmount
		return
	}
	sale.AmountPaid = decimal.Zero
}

// nextInvoiceNumber obtiene el consecutivo del día y lo formatea como
// INV-YYYYMMDD-NNN. El padding es a 3 dígitos pero no trunca secuencias mayores.
func nextInvoiceNumber(counters repository.CounterRepository, at time.Time) (string, error) {
	day := at.Format("20060102")
	seq, err := counters.NextSequence(day)
	if err != nil {
		return "", fmt.Errorf("asignando consecutivo de factura: %w", err)
	}
	return fmt.Sprintf("INV-%s-%03d", day, seq), nil
}

// consolidateItems agrupa líneas repetidas del mismo producto (sumando
// cantidades) y devuelve las líneas ordenadas por ProductID.
func consolidateItems(items []dto.SaleItemRequest) []dto.SaleItemRequest {
	byProduct := make(map[string]*dto.SaleItemRequest, len(items))
	order := make([]string, 0, len(items))
	for i := range items {
		it := items[i]
		if existing, ok := byProduct[it.ProductID]; ok {
			existing.Quantity += it.Quantity
			// La última línea manda en precio/descuento explícitos.
			if it.UnitPrice != nil {
				existing.UnitPrice = it.UnitPrice
			}
			if it.DiscountPercentage != nil {
				existing.DiscountPercentage = it.DiscountPercentage
			}
			continue
		}
		line := it
		byProduct[it.ProductID] = &line
		order = append(order, it.ProductID)
	}

	sort.Strings(order)
	out := make([]dto.SaleItemRequest, 0, len(order))
	for _, id := range order {
		out = append(out, *byProduct[id])
	}
	return out
}

func validateCreateRequest(req dto.CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return &domain.ValidationError{Field: "items", Message: "la venta requiere al menos un ítem"}
	}
	for _, it := range req.Items {
		if it.ProductID == "" {
			return &domain.ValidationError{Field: "items.product_id", Message: "requerido"}
		}
		if it.Quantity < 1 {
			return &domain.ValidationError{Field: "items.quantity", Message: "debe ser al menos 1"}
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return &domain.ValidationError{Field: "items.unit_price", Message: "no puede ser negativo"}
		}
		if it.DiscountPercentage != nil {
			if it.DiscountPercentage.IsNegative() || it.DiscountPercentage.GreaterThan(hundred) {
				return &domain.ValidationError{Field: "items.discount_percentage", Message: "debe estar entre 0 y 100"}
			}
		}
	}
	if !entity.ValidPaymentMethod(req.PaymentMethod) {
		return &domain.ValidationError{Field: "payment_method", Message: "método de pago no válido"}
	}
	switch req.PaymentStatus {
	case entity.PaymentStatusPaid, entity.PaymentStatusPartial, entity.PaymentStatusPending:
	default:
		return &domain.ValidationError{Field: "payment_status", Message: "estado de pago no válido"}
	}
	if req.TaxPercentage.IsNegative() || req.TaxPercentage.GreaterThan(hundred) {
		return &domain.ValidationError{Field: "tax_percentage", Message: "debe estar entre 0 y 100"}
	}
	if req.AmountPaid != nil && req.AmountPaid.IsNegative() {
		return &domain.ValidationError{Field: "amount_paid", Message: "no puede ser negativo"}
	}
	return nil
}
