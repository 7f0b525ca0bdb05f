// Package rbac define los permisos del sistema como conjuntos de capacidades
// por rol. Los handlers evalúan un permiso una sola vez por request en lugar
// de repetir listas de roles en cada endpoint.
package rbac

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// Permission es una capacidad concreta del sistema.
type Permission string

const (
	PermManageUsers     Permission = "manage_users"
	PermManageInventory Permission = "manage_inventory"
	PermMakeSales       Permission = "make_sales"
	PermViewReports     Permission = "view_reports"
	PermViewAllSales    Permission = "view_all_sales"
)

// rolePermissions mapea cada rol a su conjunto de capacidades.
var rolePermissions = map[string]map[Permission]bool{
	entity.RoleSuperAdmin: {
		PermManageUsers:     true,
		PermManageInventory: true,
		PermMakeSales:       true,
		PermViewReports:     true,
		PermViewAllSales:    true,
	},
	entity.RoleInventoryManager: {
		PermManageInventory: true,
		PermMakeSales:       true,
		PermViewReports:     true,
	},
	entity.RoleSalesExecutive: {
		PermMakeSales: true,
	},
	entity.RoleAccountant: {
		PermViewReports:  true,
		PermViewAllSales: true,
	},
}

// Can responde si el rol tiene la capacidad indicada.
// Un rol desconocido no tiene ninguna.
func Can(role string, perm Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[perm]
}

// Permissions devuelve la lista de capacidades del rol (para respuestas de login).
func Permissions(role string) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, 0, len(perms))
	for _, p := range []Permission{PermManageUsers, PermManageInventory, PermMakeSales, PermViewReports, PermViewAllSales} {
		if perms[p] {
			out = append(out, p)
		}
	}
	return out
}
