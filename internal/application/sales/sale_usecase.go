package sales

import (
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// SaleUseCase consultas y actualizaciones de cabecera sobre ventas ya
// registradas. Las mutaciones que afectan stock viven en CreateSaleUseCase
// y RefundSaleUseCase.
type SaleUseCase struct {
	sales repository.SaleRepository
}

// NewSaleUseCase crea el caso de uso.
func NewSaleUseCase(sales repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{sales: sales}
}

// GetByID devuelve una venta. Si restrictTo no está vacío, solo se devuelve
// si pertenece a ese vendedor (vendedores sin view_all_sales ven solo lo suyo).
func (uc *SaleUseCase) GetByID(id, restrictTo string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restrictTo != "" && sale.SalesPerson != restrictTo {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// List devuelve ventas filtradas y paginadas. restrictTo fuerza el filtro de
// vendedor independientemente de lo pedido.
func (uc *SaleUseCase) List(req dto.SaleFilterRequest, restrictTo string) ([]*entity.Sale, int, error) {
	req.Normalize()

	filter := repository.SaleFilter{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		SalesPerson:   req.SalesPerson,
		Limit:         req.PageSize,
		Offset:        req.Offset(),
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}
	if restrictTo != "" {
		filter.SalesPerson = restrictTo
	}

	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, 0, &domain.ValidationError{Field: "start_date", Message: "formato esperado YYYY-MM-DD"}
		}
		filter.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, 0, &domain.ValidationError{Field: "end_date", Message: "formato esperado YYYY-MM-DD"}
		}
		// Fin de rango inclusivo: hasta el final del día.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return uc.sales.List(filter)
}

// Update modifica los campos mutables de la cabecera: cliente, pago y notas.
// Los ítems y totales de la venta son inmutables después de la creación.
func (uc *SaleUseCase) Update(id string, req dto.UpdateSaleRequest, actor string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale.Status == entity.SaleStatusRefunded || sale.Status == entity.SaleStatusCancelled {
		return nil, &domain.ValidationError{Field: "status", Message: "la venta no admite modificaciones"}
	}

	if req.Customer != nil {
		sale.Customer = entity.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		}
	}
	if req.PaymentMethod != nil {
		if !entity.ValidPaymentMethod(*req.PaymentMethod) {
			return nil, &domain.ValidationError{Field: "payment_method", Message: "método de pago no válido"}
		}
		sale.PaymentMethod = *req.PaymentMethod
	}
	if req.PaymentStatus != nil {
		switch *req.PaymentStatus {
		case entity.PaymentStatusPaid, entity.PaymentStatusPartial, entity.PaymentStatusPending:
		default:
			return nil, &domain.ValidationError{Field: "payment_status", Message: "estado de pago no válido"}
		}
		sale.PaymentStatus = *req.PaymentStatus
	}
	if req.AmountPaid != nil {
		if req.AmountPaid.IsNegative() {
			return nil, &domain.ValidationError{Field: "amount_paid", Message: "no puede ser negativo"}
		}
		sale.AmountPaid = *req.AmountPaid
	}
	if req.PaymentStatus != nil && *req.PaymentStatus == entity.PaymentStatusPaid && req.AmountPaid == nil {
		sale.AmountPaid = sale.TotalAmount
	}
	if req.Notes != nil {
		sale.Notes = *req.Notes
	}
	if req.Status != nil {
		switch *req.Status {
		case entity.SaleStatusCompleted, entity.SaleStatusPending, entity.SaleStatusCancelled:
		default:
			return nil, &domain.ValidationError{Field: "status", Message: "estado no válido"}
		}
		sale.Status = *req.Status
	}

	// El total no cambia (los ítems son inmutables); solo el saldo.
	sale.AmountDue = sale.TotalAmount.Sub(sale.AmountPaid)
	sale.UpdatedBy = actor
	sale.UpdatedAt = time.Now()

	if err := uc.sales.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}
