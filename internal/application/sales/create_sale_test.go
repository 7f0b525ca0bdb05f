package sales_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

const testSalesPerson = "00000000-0000-0000-0000-000000000001"

func newCreateFixture(products ...*entity.Product) (*sales.CreateSaleUseCase, *fakeProductRepo, *fakeSaleRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := newFakeSaleRepo()
	tx := newFakeTxRunner(productRepo, saleRepo, newFakeCounterRepo())
	return sales.NewCreateSaleUseCase(tx), productRepo, saleRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Precios y totales
// ──────────────────────────────────────────────────────────────────────────────

// Dos unidades a 399 con 10% de descuento: total de línea 718.20 y stock 48.
func TestCreateSale_TotalesConDescuento(t *testing.T) {
	uc, productRepo, _ := newCreateFixture(
		activeProduct("p1", "BOOK-001", "Cuaderno argollado A4", 50, "399.00"),
	)

	sale, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Customer:      dto.CustomerRequest{Name: "Cliente de mostrador"},
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2, DiscountPercentage: decPtr("10")}},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.True(t, dec("718.2").Equal(sale.Items[0].TotalPrice), "total de línea: %s", sale.Items[0].TotalPrice)
	assert.True(t, dec("718.2").Equal(sale.Subtotal), "subtotal: %s", sale.Subtotal)
	assert.True(t, dec("79.8").Equal(sale.TotalDiscount), "descuento: %s", sale.TotalDiscount)
	assert.True(t, sale.TaxAmount.IsZero(), "impuesto: %s", sale.TaxAmount)
	assert.True(t, dec("718.2").Equal(sale.TotalAmount), "total: %s", sale.TotalAmount)

	// Con estado paid y sin monto explícito, se paga el total completo.
	assert.True(t, sale.AmountPaid.Equal(sale.TotalAmount))
	assert.True(t, sale.AmountDue.IsZero())

	assert.Equal(t, 48, productRepo.quantityOf("p1"), "el stock debe descontarse")
}

// El impuesto se calcula sobre el subtotal ya descontado.
func TestCreateSale_ImpuestoSobreSubtotal(t *testing.T) {
	uc, _, _ := newCreateFixture(activeProduct("p1", "USB-032", "Memoria USB", 10, "100.00"))

	sale, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		TaxPercentage: dec("19"),
		PaymentMethod: entity.PaymentMethodCard,
		PaymentStatus: entity.PaymentStatusPending,
	}, testSalesPerson)
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(sale.Subtotal))
	assert.True(t, dec("19").Equal(sale.TaxAmount))
	assert.True(t, dec("119").Equal(sale.TotalAmount))
	// pending sin monto: nada pagado, todo pendiente.
	assert.True(t, sale.AmountPaid.IsZero())
	assert.True(t, dec("119").Equal(sale.AmountDue))
}

// Sin estado de pago explícito la venta se registra como pagada.
func TestCreateSale_EstadoDePagoPorDefecto(t *testing.T) {
	uc, _, _ := newCreateFixture(activeProduct("p1", "USB-032", "Memoria USB", 10, "100.00"))

	sale, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
	}, testSalesPerson)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, sale.PaymentStatus)
	assert.True(t, sale.AmountPaid.Equal(sale.TotalAmount))
	assert.True(t, sale.AmountDue.IsZero())
}

// El precio y descuento del producto son el default; la línea puede overridearlos.
func TestCreateSale_PrecioDelProductoPorDefecto(t *testing.T) {
	product := activeProduct("p1", "PEN-001", "Bolígrafo", 100, "15.00")
	product.DiscountPercentage = dec("5")
	uc, _, _ := newCreateFixture(product)

	sale, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1},
		},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)
	require.NoError(t, err)

	assert.True(t, dec("15").Equal(sale.Items[0].UnitPrice))
	assert.True(t, dec("5").Equal(sale.Items[0].DiscountPercentage))
}

// La línea guarda snapshot de nombre y SKU del producto.
func TestCreateSale_SnapshotDeProducto(t *testing.T) {
	uc, _, saleRepo := newCreateFixture(activeProduct("p1", "MOUSE-01", "Mouse inalámbrico", 10, "42000.00"))

	_, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)
	require.NoError(t, err)

	stored := saleRepo.all()
	require.Len(t, stored, 1)
	assert.Equal(t, "Mouse inalámbrico", stored[0].Items[0].ProductName)
	assert.Equal(t, "MOUSE-01", stored[0].Items[0].SKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del carrito
// ──────────────────────────────────────────────────────────────────────────────

// Stock insuficiente: falla todo y el stock queda intacto.
func TestCreateSale_StockInsuficiente(t *testing.T) {
	uc, productRepo, saleRepo := newCreateFixture(
		activeProduct("p1", "BOOK-001", "Cuaderno", 50, "399.00"),
		activeProduct("p2", "PEN-001", "Bolígrafo", 3, "15.00"),
	)

	_, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 10}, // solo hay 3
		},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 10, stockErr.Requested)

	// Nada persistido, nada descontado (ni siquiera la línea válida).
	assert.Empty(t, saleRepo.all())
	assert.Equal(t, 50, productRepo.quantityOf("p1"))
	assert.Equal(t, 3, productRepo.quantityOf("p2"))
}

// Un producto inactivo no se puede vender aunque tenga stock.
func TestCreateSale_ProductoInactivo(t *testing.T) {
	product := activeProduct("p1", "COFFEE-500", "Café molido", 60, "16500.00")
	product.Status = entity.ProductStatusInactive
	uc, productRepo, _ := newCreateFixture(product)

	_, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, 60, productRepo.quantityOf("p1"))
}

// Producto inexistente: la venta completa falla.
func TestCreateSale_ProductoInexistente(t *testing.T) {
	uc, _, saleRepo := newCreateFixture(activeProduct("p1", "BOOK-001", "Cuaderno", 50, "399.00"))

	_, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "no-existe", Quantity: 1},
		},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, saleRepo.all())
}

func TestCreateSale_Validaciones(t *testing.T) {
	uc, _, _ := newCreateFixture(activeProduct("p1", "BOOK-001", "Cuaderno", 50, "399.00"))

	cases := []struct {
		name string
		req  dto.CreateSaleRequest
	}{
		{"carrito vacío", dto.CreateSaleRequest{
			PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		}},
		{"cantidad cero", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}},
			PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		}},
		{"método de pago inválido", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
			PaymentMethod: "bitcoin", PaymentStatus: entity.PaymentStatusPaid,
		}},
		{"descuento fuera de rango", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, DiscountPercentage: decPtr("150")}},
			PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		}},
		{"impuesto negativo", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
			TaxPercentage: dec("-1"),
			PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req, testSalesPerson)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Dos líneas del mismo producto se consolidan sumando cantidades.
func TestCreateSale_ConsolidaLineasRepetidas(t *testing.T) {
	uc, productRepo, _ := newCreateFixture(activeProduct("p1", "PEN-001", "Bolígrafo", 10, "15.00"))

	sale, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p1", Quantity: 3},
		},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, 5, sale.Items[0].Quantity)
	assert.Equal(t, 5, productRepo.quantityOf("p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Número de factura
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_FormatoDeFactura(t *testing.T) {
	uc, _, _ := newCreateFixture(activeProduct("p1", "BOOK-001", "Cuaderno", 50, "399.00"))

	sale, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
	}, testSalesPerson)
	require.NoError(t, err)

	expected := fmt.Sprintf("INV-%s-001", time.Now().Format("20060102"))
	assert.Equal(t, expected, sale.InvoiceNumber)
}

// N ventas concurrentes reciben consecutivos distintos y densos (001..N).
func TestCreateSale_ConsecutivosConcurrentes(t *testing.T) {
	const n = 20
	uc, _, saleRepo := newCreateFixture(activeProduct("p1", "PEN-001", "Bolígrafo", 1000, "15.00"))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), dto.CreateSaleRequest{
				Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
				PaymentMethod: entity.PaymentMethodCash,
				PaymentStatus: entity.PaymentStatusPaid,
			}, testSalesPerson)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored := saleRepo.all()
	require.Len(t, stored, n)

	var invoices []string
	for _, s := range stored {
		invoices = append(invoices, s.InvoiceNumber)
	}
	sort.Strings(invoices)

	day := time.Now().Format("20060102")
	for i, inv := range invoices {
		assert.Equal(t, fmt.Sprintf("INV-%s-%03d", day, i+1), inv, "la secuencia debe ser densa y sin repetidos")
	}
}
