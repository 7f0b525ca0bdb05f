package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_DescuentoPorLinea(t *testing.T) {
	sale := &entity.Sale{
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: dec("399"), DiscountPercentage: dec("10")},
			{ProductID: "p2", Quantity: 1, UnitPrice: dec("15")},
		},
	}

	sale.ComputeTotals()

	// p1: 2×399 = 798, −10% = 718.2; p2: 15
	assert.True(t, dec("718.2").Equal(sale.Items[0].TotalPrice), "TotalPrice p1 = %s", sale.Items[0].TotalPrice)
	assert.True(t, dec("15").Equal(sale.Items[1].TotalPrice))
	assert.True(t, dec("733.2").Equal(sale.Subtotal))
	assert.True(t, dec("79.8").Equal(sale.TotalDiscount))
	assert.True(t, sale.TaxAmount.IsZero())
	assert.True(t, dec("733.2").Equal(sale.TotalAmount))
	assert.True(t, dec("733.2").Equal(sale.AmountDue))
}

func TestComputeTotals_ImpuestoSobreSubtotalConDescuento(t *testing.T) {
	sale := &entity.Sale{
		TaxPercentage: dec("19"),
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 1, UnitPrice: dec("100")},
		},
	}

	sale.ComputeTotals()

	assert.True(t, dec("100").Equal(sale.Subtotal))
	assert.True(t, dec("19").Equal(sale.TaxAmount))
	assert.True(t, dec("119").Equal(sale.TotalAmount))
}

func TestComputeTotals_SaldoPendiente(t *testing.T) {
	sale := &entity.Sale{
		AmountPaid: dec("50"),
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 1, UnitPrice: dec("120")},
		},
	}

	sale.ComputeTotals()

	assert.True(t, dec("70").Equal(sale.AmountDue), "AmountDue = TotalAmount - AmountPaid")
}

func TestComputeTotals_Recalculable(t *testing.T) {
	sale := &entity.Sale{
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 3, UnitPrice: dec("10")},
		},
	}
	sale.ComputeTotals()
	first := sale.TotalAmount

	// Recalcular sin cambios debe ser idempotente.
	sale.ComputeTotals()
	assert.True(t, first.Equal(sale.TotalAmount))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{
		entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodUPI,
		entity.PaymentMethodBankTransfer, entity.PaymentMethodCheque,
	} {
		assert.True(t, entity.ValidPaymentMethod(m), "método %s", m)
	}
	assert.False(t, entity.ValidPaymentMethod("bitcoin"))
	assert.False(t, entity.ValidPaymentMethod(""))
}
