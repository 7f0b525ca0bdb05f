// Package usecase contiene los casos de uso CRUD de catálogo y usuarios.
package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase crea el caso de uso.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Create registra un producto nuevo. El SKU se normaliza a mayúsculas y debe
// ser único.
func (uc *ProductUseCase) Create(req dto.CreateProductRequest, actor string) (*entity.Product, error) {
	if err := validateProductCreate(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.ProductStatusActive
	}

	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.NewString(),
		SKU:                strings.ToUpper(strings.TrimSpace(req.SKU)),
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		Category:           req.Category,
		Quantity:           req.Quantity,
		MinStockLevel:      req.MinStockLevel,
		CostPrice:          req.CostPrice,
		SellingPrice:       req.SellingPrice,
		DiscountPercentage: req.DiscountPercentage,
		Status:             status,
		CreatedBy:          actor,
		UpdatedBy:          actor,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto por su ID.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	return uc.products.GetByID(id)
}

// GetBySKU devuelve un producto por su SKU (case-insensitive).
func (uc *ProductUseCase) GetBySKU(sku string) (*entity.Product, error) {
	return uc.products.GetBySKU(strings.ToUpper(strings.TrimSpace(sku)))
}

// Update aplica los campos presentes en la petición. El SKU no es editable.
func (uc *ProductUseCase) Update(id string, req dto.UpdateProductRequest, actor string) (*entity.Product, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, &domain.ValidationError{Field: "name", Message: "no puede estar vacío"}
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, &domain.ValidationError{Field: "quantity", Message: "no puede ser negativa"}
		}
		product.Quantity = *req.Quantity
	}
	if req.MinStockLevel != nil {
		if *req.MinStockLevel < 0 {
			return nil, &domain.ValidationError{Field: "min_stock_level", Message: "no puede ser negativo"}
		}
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, &domain.ValidationError{Field: "cost_price", Message: "no puede ser negativo"}
		}
		product.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, &domain.ValidationError{Field: "selling_price", Message: "no puede ser negativo"}
		}
		product.SellingPrice = *req.SellingPrice
	}
	if req.DiscountPercentage != nil {
		if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(hundred) {
			return nil, &domain.ValidationError{Field: "discount_percentage", Message: "debe estar entre 0 y 100"}
		}
		product.DiscountPercentage = *req.DiscountPercentage
	}
	if req.Status != nil {
		switch *req.Status {
		case entity.ProductStatusActive, entity.ProductStatusInactive, entity.ProductStatusDiscontinued:
		default:
			return nil, &domain.ValidationError{Field: "status", Message: "estado no válido"}
		}
		product.Status = *req.Status
	}

	product.UpdatedBy = actor
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete es borrado lógico: marca el producto como inactivo. Las ventas
// históricas conservan su snapshot y no se ven afectadas.
func (uc *ProductUseCase) Delete(id string, actor string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	product.Status = entity.ProductStatusInactive
	product.UpdatedBy = actor
	product.UpdatedAt = time.Now()
	return uc.products.Update(product)
}

// List devuelve productos filtrados y paginados.
func (uc *ProductUseCase) List(req dto.ProductFilterRequest) ([]*entity.Product, int, error) {
	req.Normalize()
	return uc.products.List(repository.ProductFilter{
		Category:  req.Category,
		Status:    req.Status,
		Search:    req.Search,
		LowStock:  req.LowStock,
		Limit:     req.PageSize,
		Offset:    req.Offset(),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
}

// ListLowStock devuelve los productos activos en o bajo su nivel mínimo.
func (uc *ProductUseCase) ListLowStock() ([]*entity.Product, error) {
	return uc.products.ListLowStock()
}

func validateProductCreate(req dto.CreateProductRequest) error {
	if strings.TrimSpace(req.SKU) == "" {
		return &domain.ValidationError{Field: "sku", Message: "requerido"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "requerido"}
	}
	if req.Quantity < 0 {
		return &domain.ValidationError{Field: "quantity", Message: "no puede ser negativa"}
	}
	if req.MinStockLevel < 0 {
		return &domain.ValidationError{Field: "min_stock_level", Message: "no puede ser negativo"}
	}
	if req.CostPrice.IsNegative() {
		return &domain.ValidationError{Field: "cost_price", Message: "no puede ser negativo"}
	}
	if req.SellingPrice.IsNegative() {
		return &domain.ValidationError{Field: "selling_price", Message: "no puede ser negativo"}
	}
	if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(hundred) {
		return &domain.ValidationError{Field: "discount_percentage", Message: "debe estar entre 0 y 100"}
	}
	if req.Status != "" {
		switch req.Status {
		case entity.ProductStatusActive, entity.ProductStatusInactive, entity.ProductStatusDiscontinued:
		default:
			return &domain.ValidationError{Field: "status", Message: "estado no válido"}
		}
	}
	return nil
}
