package sales_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (simulan la capa postgres, incluido el rollback)
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedBy = updatedBy
	return nil
}

func (r *fakeProductRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.Status == entity.ProductStatusActive && p.IsLowStock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountLowStock() (int, error) {
	list, _ := r.ListLowStock()
	return len(list), nil
}

func (r *fakeProductRepo) quantityOf(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Quantity
}

func (r *fakeProductRepo) snapshot() map[string]entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]entity.Product, len(r.products))
	for id, p := range r.products {
		out[id] = *p
	}
	return out
}

func (r *fakeProductRepo) restore(snap map[string]entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make(map[string]*entity.Product, len(snap))
	for id, p := range snap {
		cp := p
		r.products[id] = &cp
	}
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[string]*entity.Sale
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
	for _, s := range sales {
		cp := *s
		r.sales[s.ID] = &cp
	}
	return r
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sales {
		if existing.InvoiceNumber == s.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *fakeSaleRepo) Update(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) List(f repository.SaleFilter) ([]*entity.Sale, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeSaleRepo) all() []*entity.Sale {
	list, _, _ := r.List(repository.SaleFilter{})
	return list
}

type fakeCounterRepo struct {
	mu       sync.Mutex
	counters map[string]int
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: make(map[string]int)}
}

func (r *fakeCounterRepo) NextSequence(day string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[day]++
	return r.counters[day], nil
}

// fakeTxRunner ejecuta el callback sobre los fakes. Simula el rollback
// restaurando el estado de productos y ventas cuando fn falla.
type fakeTxRunner struct {
	mu       sync.Mutex
	products *fakeProductRepo
	sales    *fakeSaleRepo
	counters *fakeCounterRepo
}

func newFakeTxRunner(products *fakeProductRepo, sales *fakeSaleRepo, counters *fakeCounterRepo) *fakeTxRunner {
	return &fakeTxRunner{products: products, sales: sales, counters: counters}
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	counters repository.CounterRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	productSnap := r.products.snapshot()
	if err := fn(r.products, r.sales, r.counters); err != nil {
		r.products.restore(productSnap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Builders de datos de prueba
// ──────────────────────────────────────────────────────────────────────────────

func activeProduct(id, sku, name string, quantity int, price string) *entity.Product {
	selling, _ := decimal.NewFromString(price)
	return &entity.Product{
		ID:                 id,
		SKU:                sku,
		Name:               name,
		Quantity:           quantity,
		MinStockLevel:      5,
		CostPrice:          selling.Div(decimal.NewFromInt(2)),
		SellingPrice:       selling,
		DiscountPercentage: decimal.Zero,
		Status:             entity.ProductStatusActive,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
