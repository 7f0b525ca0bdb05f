package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate crea el esquema si no existe. Idempotente: seguro de ejecutar en
// cada arranque.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			full_name     TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			phone         TEXT NOT NULL DEFAULT '',
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			last_login    TIMESTAMPTZ,
			created_by    TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id                  TEXT PRIMARY KEY,
			sku                 TEXT NOT NULL UNIQUE,
			name                TEXT NOT NULL,
			description         TEXT NOT NULL DEFAULT '',
			category            TEXT NOT NULL DEFAULT '',
			quantity            INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			min_stock_level     INTEGER NOT NULL DEFAULT 0,
			cost_price          NUMERIC(14,2) NOT NULL DEFAULT 0,
			selling_price       NUMERIC(14,2) NOT NULL DEFAULT 0,
			discount_percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
			status              TEXT NOT NULL DEFAULT 'active',
			created_by          TEXT NOT NULL DEFAULT '',
			updated_by          TEXT NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
		`CREATE INDEX IF NOT EXISTS idx_products_status ON products (status)`,

		`CREATE TABLE IF NOT EXISTS sales (
			id               TEXT PRIMARY KEY,
			invoice_number   TEXT NOT NULL UNIQUE,
			customer_name    TEXT NOT NULL DEFAULT '',
			customer_email   TEXT NOT NULL DEFAULT '',
			customer_phone   TEXT NOT NULL DEFAULT '',
			customer_address TEXT NOT NULL DEFAULT '',
			payment_method   TEXT NOT NULL,
			payment_status   TEXT NOT NULL,
			subtotal         NUMERIC(14,2) NOT NULL DEFAULT 0,
			total_discount   NUMERIC(14,2) NOT NULL DEFAULT 0,
			tax_amount       NUMERIC(14,2) NOT NULL DEFAULT 0,
			tax_percentage   NUMERIC(5,2) NOT NULL DEFAULT 0,
			total_amount     NUMERIC(14,2) NOT NULL DEFAULT 0,
			amount_paid      NUMERIC(14,2) NOT NULL DEFAULT 0,
			amount_due       NUMERIC(14,2) NOT NULL DEFAULT 0,
			notes            TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'completed',
			refund_reason    TEXT NOT NULL DEFAULT '',
			refunded_at      TIMESTAMPTZ,
			sale_date        TIMESTAMPTZ NOT NULL DEFAULT now(),
			sales_person     TEXT NOT NULL,
			created_by       TEXT NOT NULL DEFAULT '',
			updated_by       TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sales_person ON sales (sales_person)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_status ON sales (status)`,

		`CREATE TABLE IF NOT EXISTS sale_items (
			id                  BIGSERIAL PRIMARY KEY,
			sale_id             TEXT NOT NULL REFERENCES sales (id) ON DELETE CASCADE,
			product_id          TEXT NOT NULL,
			product_name        TEXT NOT NULL,
			sku                 TEXT NOT NULL,
			quantity            INTEGER NOT NULL CHECK (quantity >= 1),
			unit_price          NUMERIC(14,2) NOT NULL,
			discount_percentage NUMERIC(5,2) NOT NULL DEFAULT 0,
			total_price         NUMERIC(14,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items (sale_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_product_id ON sale_items (product_id)`,

		`CREATE TABLE IF NOT EXISTS invoice_counters (
			day      TEXT PRIMARY KEY,
			last_seq INTEGER NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
