package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Category  string
	Status    string // "all" desactiva el filtro; por defecto "active"
	Search    string // busca sobre name, description y sku
	LowStock  bool   // solo productos con quantity <= min_stock_level
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string // asc | desc
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity escribe solo el stock (usado por el motor de ventas y los
	// ajustes manuales, siempre con la fila bloqueada).
	UpdateQuantity(id string, quantity int, updatedBy string) error
	List(f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock() ([]*entity.Product, error)
	CountLowStock() (int, error)
}
