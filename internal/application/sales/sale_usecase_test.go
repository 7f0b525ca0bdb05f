package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func completedSale(id string) *entity.Sale {
	sale := &entity.Sale{
		ID:            id,
		InvoiceNumber: "INV-20260901-010",
		Status:        entity.SaleStatusCompleted,
		PaymentStatus: entity.PaymentStatusPending,
		PaymentMethod: entity.PaymentMethodCash,
		SalesPerson:   testSalesPerson,
		Items: []entity.SaleItem{
			{ProductID: "p1", ProductName: "Cuaderno", SKU: "BOOK-001", Quantity: 1, UnitPrice: dec("399")},
		},
	}
	sale.ComputeTotals()
	return sale
}

// Una venta pendiente puede cancelarse vía actualización.
func TestUpdateSale_Cancelar(t *testing.T) {
	uc := sales.NewSaleUseCase(newFakeSaleRepo(completedSale("venta-1")))

	result, err := uc.Update("venta-1", dto.UpdateSaleRequest{
		Status: strPtr(entity.SaleStatusCancelled),
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, result.Status)
}

// refunded no es un estado asignable a mano; solo la devolución lo fija.
func TestUpdateSale_EstadoInvalido(t *testing.T) {
	uc := sales.NewSaleUseCase(newFakeSaleRepo(completedSale("venta-1")))

	_, err := uc.Update("venta-1", dto.UpdateSaleRequest{
		Status: strPtr(entity.SaleStatusRefunded),
	}, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una venta reembolsada no admite modificaciones.
func TestUpdateSale_RechazaReembolsada(t *testing.T) {
	sale := completedSale("venta-1")
	sale.Status = entity.SaleStatusRefunded
	uc := sales.NewSaleUseCase(newFakeSaleRepo(sale))

	_, err := uc.Update("venta-1", dto.UpdateSaleRequest{
		Notes: strPtr("no debería pasar"),
	}, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Marcar paid sin monto explícito salda la venta.
func TestUpdateSale_PagoCompleto(t *testing.T) {
	uc := sales.NewSaleUseCase(newFakeSaleRepo(completedSale("venta-1")))

	result, err := uc.Update("venta-1", dto.UpdateSaleRequest{
		PaymentStatus: strPtr(entity.PaymentStatusPaid),
	}, "admin-1")
	require.NoError(t, err)

	assert.True(t, result.AmountPaid.Equal(result.TotalAmount))
	assert.True(t, result.AmountDue.IsZero())
}
