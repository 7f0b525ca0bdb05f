package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, invoice_number, customer_name, customer_email, customer_phone, customer_address,
	payment_method, payment_status, subtotal, total_discount, tax_amount, tax_percentage,
	total_amount, amount_paid, amount_due, notes, status, refund_reason, refunded_at,
	sale_date, sales_person, created_by, updated_by, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Atómico solo dentro de una
// transacción (el motor de ventas siempre llama aquí vía TxRunner).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, invoice_number, customer_name, customer_email, customer_phone, customer_address,
			payment_method, payment_status, subtotal, total_discount, tax_amount, tax_percentage,
			total_amount, amount_paid, amount_due, notes, status, refund_reason, refunded_at,
			sale_date, sales_person, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.InvoiceNumber,
		sale.Customer.Name, sale.Customer.Email, sale.Customer.Phone, sale.Customer.Address,
		sale.PaymentMethod, sale.PaymentStatus,
		sale.Subtotal, sale.TotalDiscount, sale.TaxAmount, sale.TaxPercentage,
		sale.TotalAmount, sale.AmountPaid, sale.AmountDue,
		sale.Notes, sale.Status, sale.RefundReason, sale.RefundedAt,
		sale.SaleDate, sale.SalesPerson, sale.CreatedBy, sale.UpdatedBy,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, product_name, sku, quantity, unit_price, discount_percentage, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			sale.ID, item.ProductID, item.ProductName, item.SKU,
			item.Quantity, item.UnitPrice, item.DiscountPercentage, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la venta bloqueando la cabecera (para el reembolso).
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.get(id, true)
}

func (r *SaleRepo) get(id string, forUpdate bool) (*entity.Sale, error) {
	ctx := context.Background()
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	sale, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// Update escribe solo los campos mutables de la cabecera.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET
			customer_name = $2, customer_email = $3, customer_phone = $4, customer_address = $5,
			payment_method = $6, payment_status = $7, amount_paid = $8, amount_due = $9,
			notes = $10, status = $11, refund_reason = $12, refunded_at = $13,
			updated_by = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		sale.ID,
		sale.Customer.Name, sale.Customer.Email, sale.Customer.Phone, sale.Customer.Address,
		sale.PaymentMethod, sale.PaymentStatus, sale.AmountPaid, sale.AmountDue,
		sale.Notes, sale.Status, sale.RefundReason, sale.RefundedAt,
		sale.UpdatedBy, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve ventas filtradas (con líneas) y el total sin paginar.
func (r *SaleRepo) List(f repository.SaleFilter) ([]*entity.Sale, int, error) {
	ctx := context.Background()

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	status := f.Status
	if status == "" {
		status = entity.SaleStatusCompleted
	}
	if status != "all" {
		conds = append(conds, "status = "+arg(status))
	}
	if f.PaymentStatus != "" {
		conds = append(conds, "payment_status = "+arg(f.PaymentStatus))
	}
	if f.SalesPerson != "" {
		conds = append(conds, "sales_person = "+arg(f.SalesPerson))
	}
	if f.StartDate != nil {
		conds = append(conds, "sale_date >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		conds = append(conds, "sale_date <= "+arg(*f.EndDate))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM sales"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	orderBy := sortClause(f.SortBy, f.SortOrder, "sale_date", map[string]string{
		"sale_date":      "sale_date",
		"invoice_number": "invoice_number",
		"total_amount":   "total_amount",
		"created_at":     "created_at",
	})

	query := `SELECT ` + saleColumns + ` FROM sales` + where +
		` ORDER BY ` + orderBy +
		` LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, 0, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate sales: %w", err)
	}

	for _, sale := range sales {
		items, err := r.loadItems(ctx, sale.ID)
		if err != nil {
			return nil, 0, err
		}
		sale.Items = items
	}
	return sales, total, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT product_id, product_name, sku, quantity, unit_price, discount_percentage, total_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ProductID, &it.ProductName, &it.SKU, &it.Quantity,
			&it.UnitPrice, &it.DiscountPercentage, &it.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}
	return items, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.InvoiceNumber,
		&s.Customer.Name, &s.Customer.Email, &s.Customer.Phone, &s.Customer.Address,
		&s.PaymentMethod, &s.PaymentStatus,
		&s.Subtotal, &s.TotalDiscount, &s.TaxAmount, &s.TaxPercentage,
		&s.TotalAmount, &s.AmountPaid, &s.AmountDue,
		&s.Notes, &s.Status, &s.RefundReason, &s.RefundedAt,
		&s.SaleDate, &s.SalesPerson, &s.CreatedBy, &s.UpdatedBy,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}
