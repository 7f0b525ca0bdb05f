package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
)

// AutoSeed crea el usuario administrador y productos de demostración cuando
// la base está vacía. No hace nada si ya existen usuarios.
func AutoSeed(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed: contar usuarios: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin: %w", err)
	}

	adminID := uuid.NewString()
	now := time.Now()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, username, email, full_name, password_hash, role, phone, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, '', TRUE, 'seed', $7, $7)`,
		adminID, cfg.AdminUsername, cfg.AdminEmail, "Administrador", string(hash), entity.RoleSuperAdmin, now,
	)
	if err != nil {
		return fmt.Errorf("seed: insertar admin: %w", err)
	}

	demo := []struct {
		sku, name, category string
		quantity, minStock  int
		cost, price         string
	}{
		{"BOOK-001", "Cuaderno argollado A4", "Papelería", 50, 10, "250.00", "399.00"},
		{"PEN-001", "Bolígrafo tinta negra", "Papelería", 200, 30, "8.50", "15.00"},
		{"USB-032", "Memoria USB 32GB", "Tecnología", 40, 5, "18000.00", "29900.00"},
		{"MOUSE-01", "Mouse inalámbrico", "Tecnología", 25, 5, "22000.00", "42000.00"},
		{"COFFEE-500", "Café molido 500g", "Alimentos", 60, 15, "9800.00", "16500.00"},
	}
	for _, d := range demo {
		cost, _ := decimal.NewFromString(d.cost)
		price, _ := decimal.NewFromString(d.price)
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, sku, name, description, category, quantity, min_stock_level,
				cost_price, selling_price, discount_percentage, status, created_by, updated_by, created_at, updated_at)
			VALUES ($1, $2, $3, '', $4, $5, $6, $7, $8, 0, 'active', 'seed', 'seed', $9, $9)`,
			uuid.NewString(), d.sku, d.name, d.category, d.quantity, d.minStock, cost, price, now,
		)
		if err != nil {
			return fmt.Errorf("seed: insertar producto %s: %w", d.sku, err)
		}
	}

	log.Info().
		Str("admin", cfg.AdminUsername).
		Int("products", len(demo)).
		Msg("base de datos inicializada con datos de demostración")
	return nil
}
