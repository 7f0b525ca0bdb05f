// Package sales implementa el motor de ventas: creación de ventas con
// descuento de stock, asignación de consecutivo de factura y reembolsos.
package sales

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. Los repositorios que recibe
// fn operan sobre esa transacción: si fn devuelve error se hace rollback,
// si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		sales repository.SaleRepository,
		counters repository.CounterRepository,
	) error) error
}
