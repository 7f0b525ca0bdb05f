package repository

import (
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas.
type SaleFilter struct {
	Status        string // "all" desactiva el filtro; por defecto "completed"
	PaymentStatus string
	SalesPerson   string
	StartDate     *time.Time
	EndDate       *time.Time
	Limit         int
	Offset        int
	SortBy        string
	SortOrder     string
}

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
// Una venta se crea de forma atómica con sus líneas; los ítems no son
// direccionables por separado.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta (para el reembolso).
	GetForUpdate(id string) (*entity.Sale, error)
	// Update escribe solo los campos mutables de la cabecera (customer,
	// payment_status, amount_paid, amount_due, notes, status, updated_by).
	Update(sale *entity.Sale) error
	List(f SaleFilter) ([]*entity.Sale, int, error)
}

// CounterRepository asigna consecutivos de factura por día calendario.
// NextSequence debe ser atómico: N llamadas concurrentes para el mismo día
// devuelven N valores distintos y densos (1..N).
type CounterRepository interface {
	NextSequence(day string) (int, error)
}
