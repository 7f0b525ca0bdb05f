package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo asigna consecutivos de factura por día sobre la tabla
// invoice_counters.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// NextSequence devuelve el siguiente consecutivo del día. El upsert con
// RETURNING es atómico: dos llamadas concurrentes nunca reciben el mismo
// valor, y la secuencia por día es densa (1..N).
func (r *CounterRepo) NextSequence(day string) (int, error) {
	query := `
		INSERT INTO invoice_counters (day, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (day)
		DO UPDATE SET last_seq = invoice_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, day).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return seq, nil
}
