package repository

import (
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// UserFilter filtros de listado de usuarios.
type UserFilter struct {
	Role   string
	Active *bool
	Search string // busca sobre username, full_name y email
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// FindByLogin acepta username o email (para login).
	FindByLogin(login string) (*entity.User, error)
	Update(user *entity.User) error
	TouchLastLogin(id string, at time.Time) error
	List(f UserFilter) ([]*entity.User, int, error)
	CountByRole() (map[string]int, error)
}
