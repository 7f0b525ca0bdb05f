package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// CreateProductRequest datos para crear un producto.
type CreateProductRequest struct {
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Quantity           int             `json:"quantity"`
	MinStockLevel      int             `json:"min_stock_level"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Status             string          `json:"status"`
}

// UpdateProductRequest datos para actualizar un producto.
// Los punteros distinguen "campo ausente" de "campo con valor cero".
type UpdateProductRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Category           *string          `json:"category"`
	Quantity           *int             `json:"quantity"`
	MinStockLevel      *int             `json:"min_stock_level"`
	CostPrice          *decimal.Decimal `json:"cost_price"`
	SellingPrice       *decimal.Decimal `json:"selling_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	Status             *string          `json:"status"`
}

// ProductFilterRequest filtros del listado de productos.
type ProductFilterRequest struct {
	PageRequest
	Category  string `json:"category" query:"category"`
	Status    string `json:"status" query:"status"`
	Search    string `json:"search" query:"search"`
	LowStock  bool   `json:"low_stock" query:"low_stock"`
	SortBy    string `json:"sort_by" query:"sort_by"`
	SortOrder string `json:"sort_order" query:"sort_order"`
}

// ProductResponse representación de un producto en la API.
type ProductResponse struct {
	ID                 string          `json:"id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Quantity           int             `json:"quantity"`
	MinStockLevel      int             `json:"min_stock_level"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Status             string          `json:"status"`
	IsLowStock         bool            `json:"is_low_stock"`
	CreatedBy          string          `json:"created_by,omitempty"`
	UpdatedBy          string          `json:"updated_by,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToProductResponse convierte la entidad a su representación API.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		Category:           p.Category,
		Quantity:           p.Quantity,
		MinStockLevel:      p.MinStockLevel,
		CostPrice:          p.CostPrice,
		SellingPrice:       p.SellingPrice,
		DiscountPercentage: p.DiscountPercentage,
		Status:             p.Status,
		IsLowStock:         p.IsLowStock(),
		CreatedBy:          p.CreatedBy,
		UpdatedBy:          p.UpdatedBy,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToProductResponses convierte una lista de entidades.
func ToProductResponses(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

// AdjustStockRequest petición de ajuste de inventario.
type AdjustStockRequest struct {
	Operation string `json:"operation"` // set, add, subtract
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// AdjustStockResponse resultado del ajuste de inventario.
type AdjustStockResponse struct {
	ProductID        string `json:"product_id"`
	SKU              string `json:"sku"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	Operation        string `json:"operation"`
}
