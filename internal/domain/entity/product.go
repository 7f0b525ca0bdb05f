package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product.
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// Product representa un producto del catálogo. Quantity es stock en unidades
// enteras; los precios son decimales exactos (NUMERIC en la DB).
type Product struct {
	ID                 string
	SKU                string // código único, normalizado a mayúsculas
	Name               string
	Description        string
	Category           string
	Quantity           int // nunca negativo
	MinStockLevel      int
	CostPrice          decimal.Decimal
	SellingPrice       decimal.Decimal
	DiscountPercentage decimal.Decimal // 0–100
	Status             string          // active, inactive, discontinued
	CreatedBy          string
	UpdatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsLowStock es un predicado derivado, nunca se persiste.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// IsActive indica si el producto puede venderse.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
