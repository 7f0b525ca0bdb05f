package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// SaleItemRequest línea de venta entrante. El precio y descuento son
// opcionales: si no vienen, se toman del producto.
type SaleItemRequest struct {
	ProductID          string           `json:"product_id"`
	Quantity           int              `json:"quantity"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
}

// CustomerRequest datos del cliente de una venta.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateSaleRequest petición de creación de venta.
type CreateSaleRequest struct {
	Customer      CustomerRequest   `json:"customer"`
	Items         []SaleItemRequest `json:"items"`
	TaxPercentage decimal.Decimal   `json:"tax_percentage"`
	PaymentMethod string            `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`
	AmountPaid    *decimal.Decimal  `json:"amount_paid"`
	Notes         string            `json:"notes"`
}

// UpdateSaleRequest campos mutables de una venta ya registrada. Status solo
// admite completed, pending o cancelled; refunded solo lo fija la devolución.
type UpdateSaleRequest struct {
	Customer      *CustomerRequest `json:"customer"`
	PaymentMethod *string          `json:"payment_method"`
	PaymentStatus *string          `json:"payment_status"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
	Notes         *string          `json:"notes"`
	Status        *string          `json:"status"`
}

// RefundSaleRequest petición de devolución. Si Items está vacío la
// devolución es total.
type RefundSaleRequest struct {
	Reason string              `json:"reason"`
	Items  []RefundItemRequest `json:"items"`
}

// RefundItemRequest línea de devolución parcial.
type RefundItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// SaleFilterRequest filtros del listado de ventas.
type SaleFilterRequest struct {
	PageRequest
	Status        string `json:"status" query:"status"`
	PaymentStatus string `json:"payment_status" query:"payment_status"`
	SalesPerson   string `json:"sales_person" query:"sales_person"`
	StartDate     string `json:"start_date" query:"start_date"` // YYYY-MM-DD
	EndDate       string `json:"end_date" query:"end_date"`     // YYYY-MM-DD
	SortBy        string `json:"sort_by" query:"sort_by"`
	SortOrder     string `json:"sort_order" query:"sort_order"`
}

// SaleItemResponse línea de venta en la API.
type SaleItemResponse struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	SKU                string          `json:"sku"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TotalPrice         decimal.Decimal `json:"total_price"`
}

// CustomerResponse datos del cliente en la API.
type CustomerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// SaleResponse representación de una venta en la API.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	Customer      CustomerResponse   `json:"customer"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TaxPercentage decimal.Decimal    `json:"tax_percentage"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	AmountDue     decimal.Decimal    `json:"amount_due"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	Status        string             `json:"status"`
	SalesPerson   string             `json:"sales_person"`
	Notes         string             `json:"notes,omitempty"`
	RefundReason  string             `json:"refund_reason,omitempty"`
	RefundedAt    *time.Time         `json:"refunded_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToSaleResponse convierte la entidad a su representación API.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:          it.ProductID,
			ProductName:        it.ProductName,
			SKU:                it.SKU,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountPercentage: it.DiscountPercentage,
			TotalPrice:         it.TotalPrice,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		Customer: CustomerResponse{
			Name:    s.Customer.Name,
			Email:   s.Customer.Email,
			Phone:   s.Customer.Phone,
			Address: s.Customer.Address,
		},
		Items:         items,
		Subtotal:      s.Subtotal,
		TotalDiscount: s.TotalDiscount,
		TaxPercentage: s.TaxPercentage,
		TaxAmount:     s.TaxAmount,
		TotalAmount:   s.TotalAmount,
		AmountPaid:    s.AmountPaid,
		AmountDue:     s.AmountDue,
		PaymentMethod: s.PaymentMethod,
		PaymentStatus: s.PaymentStatus,
		Status:        s.Status,
		SalesPerson:   s.SalesPerson,
		Notes:         s.Notes,
		RefundReason:  s.RefundReason,
		RefundedAt:    s.RefundedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleResponses convierte una lista de entidades.
func ToSaleResponses(sales []entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, ToSaleResponse(&sales[i]))
	}
	return out
}
