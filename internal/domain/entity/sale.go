package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodUPI          = "upi"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheque       = "cheque"
)

// Estados de pago de una venta.
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusPartial  = "partial"
	PaymentStatusPending  = "pending"
	PaymentStatusRefunded = "refunded"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

// ValidPaymentMethod verifica que el método de pago sea uno aceptado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI,
		PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// SaleItem es una línea de venta con snapshot del producto al momento de la
// transacción (desacopla la factura histórica de ediciones posteriores).
type SaleItem struct {
	ProductID          string
	ProductName        string
	SKU                string
	Quantity           int // >= 1
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal // 0–100
	TotalPrice         decimal.Decimal // qty*price - descuento; derivado
}

// Customer datos opcionales del cliente de mostrador.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Sale representa una venta con sus líneas embebidas. La lista de ítems es
// inmutable después de la creación; solo el reembolso la afecta.
type Sale struct {
	ID            string
	InvoiceNumber string // INV-YYYYMMDD-NNN, único
	Items         []SaleItem
	Customer      Customer
	PaymentMethod string
	PaymentStatus string
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxAmount     decimal.Decimal
	TaxPercentage decimal.Decimal
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	AmountDue     decimal.Decimal
	Notes         string
	Status        string
	RefundReason  string
	RefundedAt    *time.Time
	SaleDate      time.Time
	SalesPerson   string
	CreatedBy     string
	UpdatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeTotals recalcula todos los montos derivados a partir de los ítems.
// Invariantes: TotalAmount = Subtotal + TaxAmount; AmountDue = TotalAmount - AmountPaid.
// Nunca se asignan a mano: cualquier cambio en los ítems pasa por aquí.
func (s *Sale) ComputeTotals() {
	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	for i := range s.Items {
		item := &s.Items[i]
		itemTotal := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice)
		discountAmount := itemTotal.Mul(item.DiscountPercentage).Div(hundred)
		item.TotalPrice = itemTotal.Sub(discountAmount)
		subtotal = subtotal.Add(item.TotalPrice)
		totalDiscount = totalDiscount.Add(discountAmount)
	}
	s.Subtotal = subtotal
	s.TotalDiscount = totalDiscount
	s.TaxAmount = subtotal.Mul(s.TaxPercentage).Div(hundred)
	s.TotalAmount = s.Subtotal.Add(s.TaxAmount)
	s.AmountDue = s.TotalAmount.Sub(s.AmountPaid)
}
