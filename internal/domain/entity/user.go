package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin       = "super_admin"
	RoleInventoryManager = "inventory_manager"
	RoleSalesExecutive   = "sales_executive"
	RoleAccountant       = "accountant"
)

// ValidRole verifica que el rol sea uno de los definidos.
func ValidRole(r string) bool {
	switch r {
	case RoleSuperAdmin, RoleInventoryManager, RoleSalesExecutive, RoleAccountant:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	Phone        string
	IsActive     bool
	LastLogin    *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
