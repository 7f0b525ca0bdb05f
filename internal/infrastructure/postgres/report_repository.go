package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard, reportes y
// exportaciones. Siempre corre sobre el pool (nunca dentro de una tx).
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesSummary totales del rango. Excluye ventas canceladas; las reembolsadas
// sí cuentan (el ingreso histórico se reporta, el reembolso es un evento aparte).
func (r *ReportRepo) SalesSummary(ctx context.Context, start, end time.Time, salesPerson string) (repository.SalesSummary, error) {
	query := `
	SELECT
	    COUNT(*)                                 AS total_sales,
	    COALESCE(SUM(total_amount), 0)           AS total_revenue,
	    COALESCE(SUM(total_discount), 0)         AS total_discount,
	    COALESCE(SUM(tax_amount), 0)             AS total_tax,
	    COALESCE(AVG(total_amount), 0)           AS average_order_value
	FROM sales
	WHERE sale_date BETWEEN $1 AND $2
	  AND status <> 'cancelled'
	  AND ($3 = '' OR sales_person = $3)`

	var s repository.SalesSummary
	err := r.pool.QueryRow(ctx, query, start, end, salesPerson).Scan(
		&s.TotalSales, &s.TotalRevenue, &s.TotalDiscount, &s.TotalTax, &s.AverageOrderValue,
	)
	if err != nil {
		return s, fmt.Errorf("report.SalesSummary: %w", err)
	}
	return s, nil
}

// SalesOverTime serie temporal agrupada por day, week, month o year.
func (r *ReportRepo) SalesOverTime(ctx context.Context, start, end time.Time, groupBy, salesPerson string) ([]repository.SalesBucket, error) {
	var format string
	switch groupBy {
	case "week":
		format = `IYYY-"W"IW`
	case "month":
		format = "YYYY-MM"
	case "year":
		format = "YYYY"
	default: // day
		format = "YYYY-MM-DD"
	}

	query := fmt.Sprintf(`
	SELECT
	    to_char(sale_date, '%s')                 AS period,
	    COUNT(*)                                 AS total_sales,
	    COALESCE(SUM(total_amount), 0)           AS total_revenue,
	    COALESCE(SUM(total_discount), 0)         AS total_discount,
	    COALESCE(AVG(total_amount), 0)           AS average_order_value
	FROM sales
	WHERE sale_date BETWEEN $1 AND $2
	  AND status <> 'cancelled'
	  AND ($3 = '' OR sales_person = $3)
	GROUP BY period
	ORDER BY period`, format)

	rows, err := r.pool.Query(ctx, query, start, end, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("report.SalesOverTime: %w", err)
	}
	defer rows.Close()

	var buckets []repository.SalesBucket
	for rows.Next() {
		var b repository.SalesBucket
		if err := rows.Scan(&b.Period, &b.TotalSales, &b.TotalRevenue, &b.TotalDiscount, &b.AverageOrderValue); err != nil {
			return nil, fmt.Errorf("report.SalesOverTime scan: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// SalesByCategory agrupa las líneas vendidas por categoría del producto.
func (r *ReportRepo) SalesByCategory(ctx context.Context, start, end time.Time, category, salesPerson string) ([]repository.CategorySales, error) {
	query := `
	SELECT
	    COALESCE(p.category, 'Sin categoría')    AS category,
	    SUM(si.quantity)                         AS total_quantity,
	    COALESCE(SUM(si.total_price), 0)         AS total_revenue,
	    COUNT(DISTINCT s.id)                     AS total_sales
	FROM sales s
	JOIN sale_items si ON si.sale_id = s.id
	LEFT JOIN products p ON p.id = si.product_id
	WHERE s.sale_date BETWEEN $1 AND $2
	  AND s.status <> 'cancelled'
	  AND ($3 = '' OR p.category = $3)
	  AND ($4 = '' OR s.sales_person = $4)
	GROUP BY p.category
	ORDER BY total_revenue DESC`

	rows, err := r.pool.Query(ctx, query, start, end, category, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("report.SalesByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategorySales
	for rows.Next() {
		var c repository.CategorySales
		if err := rows.Scan(&c.Category, &c.TotalQuantity, &c.TotalRevenue, &c.TotalSales); err != nil {
			return nil, fmt.Errorf("report.SalesByCategory scan: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// SalesByPaymentMethod agrupa ventas por método de pago.
func (r *ReportRepo) SalesByPaymentMethod(ctx context.Context, start, end time.Time, salesPerson string) ([]repository.PaymentMethodSales, error) {
	query := `
	SELECT
	    payment_method                           AS method,
	    COUNT(*)                                 AS count,
	    COALESCE(SUM(total_amount), 0)           AS total_amount
	FROM sales
	WHERE sale_date BETWEEN $1 AND $2
	  AND status <> 'cancelled'
	  AND ($3 = '' OR sales_person = $3)
	GROUP BY payment_method
	ORDER BY total_amount DESC`

	rows, err := r.pool.Query(ctx, query, start, end, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("report.SalesByPaymentMethod: %w", err)
	}
	defer rows.Close()

	var results []repository.PaymentMethodSales
	for rows.Next() {
		var m repository.PaymentMethodSales
		if err := rows.Scan(&m.Method, &m.Count, &m.TotalAmount); err != nil {
			return nil, fmt.Errorf("report.SalesByPaymentMethod scan: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// SalesPersonPerformance agrupa ventas por vendedor (con su nombre si la
// cuenta aún existe).
func (r *ReportRepo) SalesPersonPerformance(ctx context.Context, start, end time.Time) ([]repository.SalesPersonPerformance, error) {
	query := `
	SELECT
	    s.sales_person                           AS sales_person_id,
	    COALESCE(u.full_name, s.sales_person)    AS full_name,
	    COUNT(*)                                 AS total_sales,
	    COALESCE(SUM(s.total_amount), 0)         AS total_revenue,
	    COALESCE(AVG(s.total_amount), 0)         AS average_order_value
	FROM sales s
	LEFT JOIN users u ON u.id = s.sales_person
	WHERE s.sale_date BETWEEN $1 AND $2
	  AND s.status <> 'cancelled'
	GROUP BY s.sales_person, u.full_name
	ORDER BY total_revenue DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.SalesPersonPerformance: %w", err)
	}
	defer rows.Close()

	var results []repository.SalesPersonPerformance
	for rows.Next() {
		var p repository.SalesPersonPerformance
		if err := rows.Scan(&p.SalesPersonID, &p.FullName, &p.TotalSales, &p.TotalRevenue, &p.AverageOrderValue); err != nil {
			return nil, fmt.Errorf("report.SalesPersonPerformance scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// ProductStats conteos globales del catálogo y valor de inventario a costo.
func (r *ReportRepo) ProductStats(ctx context.Context) (repository.ProductStats, error) {
	query := `
	SELECT
	    COUNT(*)                                                          AS total_products,
	    COUNT(*) FILTER (WHERE status = 'active')                         AS active_products,
	    COUNT(*) FILTER (WHERE status = 'active'
	                       AND quantity <= min_stock_level)               AS low_stock_count,
	    COALESCE(SUM(quantity * cost_price), 0)                           AS inventory_value
	FROM products`

	var s repository.ProductStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.ActiveProducts, &s.LowStockCount, &s.InventoryValue,
	)
	if err != nil {
		return s, fmt.Errorf("report.ProductStats: %w", err)
	}
	return s, nil
}

// TopProducts los productos más vendidos (por unidades) desde la fecha dada.
func (r *ReportRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]repository.TopProduct, error) {
	query := `
	SELECT
	    si.product_id,
	    si.product_name,
	    SUM(si.quantity)                         AS total_quantity,
	    COALESCE(SUM(si.total_price), 0)         AS total_revenue
	FROM sales s
	JOIN sale_items si ON si.sale_id = s.id
	WHERE s.sale_date >= $1
	  AND s.status <> 'cancelled'
	GROUP BY si.product_id, si.product_name
	ORDER BY total_quantity DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("report.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.TotalQuantity, &t.TotalRevenue); err != nil {
			return nil, fmt.Errorf("report.TopProducts scan: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// RecentSales las últimas ventas registradas (cabeceras ligeras).
func (r *ReportRepo) RecentSales(ctx context.Context, limit int) ([]repository.RecentSale, error) {
	query := `
	SELECT id, invoice_number, total_amount, sale_date, customer_name, sales_person
	FROM sales
	WHERE status <> 'cancelled'
	ORDER BY sale_date DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("report.RecentSales: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentSale
	for rows.Next() {
		var s repository.RecentSale
		if err := rows.Scan(&s.ID, &s.InvoiceNumber, &s.TotalAmount, &s.SaleDate, &s.CustomerName, &s.SalesPerson); err != nil {
			return nil, fmt.Errorf("report.RecentSales scan: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// UserStats conteos de usuarios.
func (r *ReportRepo) UserStats(ctx context.Context) (repository.UserStats, error) {
	query := `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users`

	var s repository.UserStats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.TotalUsers, &s.ActiveUsers); err != nil {
		return s, fmt.Errorf("report.UserStats: %w", err)
	}
	return s, nil
}

// InventorySummary resumen valorizado del inventario con filtros opcionales.
func (r *ReportRepo) InventorySummary(ctx context.Context, category, status string) (repository.InventorySummary, error) {
	query := `
	SELECT
	    COUNT(*)                                                          AS total_products,
	    COALESCE(SUM(quantity), 0)                                        AS total_quantity,
	    COALESCE(SUM(quantity * cost_price), 0)                           AS total_cost_value,
	    COALESCE(SUM(quantity * selling_price), 0)                        AS total_selling_value,
	    COUNT(*) FILTER (WHERE quantity <= min_stock_level)               AS low_stock_count
	FROM products
	WHERE ($1 = '' OR category = $1)
	  AND ($2 = '' OR $2 = 'all' OR status = $2)`

	var s repository.InventorySummary
	err := r.pool.QueryRow(ctx, query, category, status).Scan(
		&s.TotalProducts, &s.TotalQuantity, &s.TotalCostValue, &s.TotalSellingValue, &s.LowStockCount,
	)
	if err != nil {
		return s, fmt.Errorf("report.InventorySummary: %w", err)
	}
	return s, nil
}

// CategoryValue valor de inventario agrupado por categoría.
func (r *ReportRepo) CategoryValue(ctx context.Context, category, status string) ([]repository.CategoryValue, error) {
	query := `
	SELECT
	    COALESCE(category, 'Sin categoría')                               AS category,
	    COUNT(*)                                                          AS total_products,
	    COALESCE(SUM(quantity), 0)                                        AS total_quantity,
	    COALESCE(SUM(quantity * cost_price), 0)                           AS total_cost_value,
	    COALESCE(SUM(quantity * selling_price), 0)                        AS total_selling_value,
	    COALESCE(AVG(cost_price), 0)                                      AS average_cost_price,
	    COALESCE(AVG(selling_price), 0)                                   AS average_selling_price
	FROM products
	WHERE ($1 = '' OR category = $1)
	  AND ($2 = '' OR $2 = 'all' OR status = $2)
	GROUP BY category
	ORDER BY total_cost_value DESC`

	rows, err := r.pool.Query(ctx, query, category, status)
	if err != nil {
		return nil, fmt.Errorf("report.CategoryValue: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryValue
	for rows.Next() {
		var c repository.CategoryValue
		if err := rows.Scan(
			&c.Category, &c.TotalProducts, &c.TotalQuantity,
			&c.TotalCostValue, &c.TotalSellingValue,
			&c.AverageCostPrice, &c.AverageSellingPrice,
		); err != nil {
			return nil, fmt.Errorf("report.CategoryValue scan: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// TopValueProducts los productos con mayor valor en inventario (qty × costo).
func (r *ReportRepo) TopValueProducts(ctx context.Context, category, status string, limit int) ([]repository.ProductValue, error) {
	query := `
	SELECT
	    id, name, sku, COALESCE(category, ''), quantity, cost_price, selling_price,
	    quantity * cost_price AS total_value
	FROM products
	WHERE ($1 = '' OR category = $1)
	  AND ($2 = '' OR $2 = 'all' OR status = $2)
	ORDER BY total_value DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, category, status, limit)
	if err != nil {
		return nil, fmt.Errorf("report.TopValueProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductValue
	for rows.Next() {
		var p repository.ProductValue
		if err := rows.Scan(
			&p.ProductID, &p.Name, &p.SKU, &p.Category, &p.Quantity,
			&p.CostPrice, &p.SellingPrice, &p.TotalValue,
		); err != nil {
			return nil, fmt.Errorf("report.TopValueProducts scan: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// ExportSales filas planas para exportación de ventas.
func (r *ReportRepo) ExportSales(ctx context.Context, start, end *time.Time, salesPerson string) ([]repository.SaleExportRow, error) {
	query := `
	SELECT
	    invoice_number,
	    to_char(sale_date, 'YYYY-MM-DD HH24:MI') AS sale_date,
	    customer_name,
	    COALESCE(u.full_name, s.sales_person)    AS sales_person,
	    total_amount, payment_method, payment_status, s.status
	FROM sales s
	LEFT JOIN users u ON u.id = s.sales_person
	WHERE ($1::timestamptz IS NULL OR sale_date >= $1)
	  AND ($2::timestamptz IS NULL OR sale_date <= $2)
	  AND ($3 = '' OR s.sales_person = $3)
	ORDER BY sale_date DESC`

	rows, err := r.pool.Query(ctx, query, start, end, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("report.ExportSales: %w", err)
	}
	defer rows.Close()

	var results []repository.SaleExportRow
	for rows.Next() {
		var e repository.SaleExportRow
		if err := rows.Scan(
			&e.InvoiceNumber, &e.SaleDate, &e.CustomerName, &e.SalesPerson,
			&e.TotalAmount, &e.PaymentMethod, &e.PaymentStatus, &e.Status,
		); err != nil {
			return nil, fmt.Errorf("report.ExportSales scan: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// ExportInventory filas planas para exportación de inventario.
func (r *ReportRepo) ExportInventory(ctx context.Context) ([]repository.InventoryExportRow, error) {
	query := `
	SELECT
	    name, sku, COALESCE(category, ''), quantity, min_stock_level,
	    cost_price, selling_price, quantity * cost_price AS total_value,
	    status, quantity <= min_stock_level AS is_low_stock
	FROM products
	ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("report.ExportInventory: %w", err)
	}
	defer rows.Close()

	var results []repository.InventoryExportRow
	for rows.Next() {
		var e repository.InventoryExportRow
		if err := rows.Scan(
			&e.Name, &e.SKU, &e.Category, &e.Quantity, &e.MinStockLevel,
			&e.CostPrice, &e.SellingPrice, &e.TotalValue, &e.Status, &e.IsLowStock,
		); err != nil {
			return nil, fmt.Errorf("report.ExportInventory scan: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// ExportUsers filas planas para exportación de usuarios.
func (r *ReportRepo) ExportUsers(ctx context.Context) ([]repository.UserExportRow, error) {
	query := `
	SELECT
	    username, full_name, email, role, is_active,
	    COALESCE(to_char(last_login, 'YYYY-MM-DD HH24:MI'), 'nunca'),
	    to_char(created_at, 'YYYY-MM-DD')
	FROM users
	ORDER BY username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("report.ExportUsers: %w", err)
	}
	defer rows.Close()

	var results []repository.UserExportRow
	for rows.Next() {
		var e repository.UserExportRow
		if err := rows.Scan(
			&e.Username, &e.FullName, &e.Email, &e.Role, &e.IsActive, &e.LastLogin, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("report.ExportUsers scan: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}
