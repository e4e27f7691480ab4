// Package policy decide qué recursos puede ver y mutar cada rol.
// La tabla es estática y cerrada: un rol desconocido o vacío no tiene
// permisos (deny-all), nunca es un error.
package policy

import "github.com/marjoc/farmacia-api/internal/domain/entity"

// Resource identifica una pantalla/recurso de la aplicación.
type Resource string

const (
	ResourceDashboard Resource = "dashboard"
	ResourceCustomers Resource = "customers"
	ResourceProducts  Resource = "products" // incluye la operación de venta
	ResourceReports   Resource = "reports"
	ResourceUsers     Resource = "users" // administración de usuarios
)

// allowed es la tabla recurso × roles permitidos.
var allowed = map[Resource]map[entity.Role]bool{
	ResourceDashboard: {
		entity.RoleAdministrator: true,
		entity.RoleFarmaceutico:  true,
		entity.RoleOperadorCaixa: true,
	},
	ResourceCustomers: {
		entity.RoleAdministrator: true,
		entity.RoleFarmaceutico:  true,
		entity.RoleOperadorCaixa: true,
	},
	ResourceProducts: {
		entity.RoleAdministrator: true,
		entity.RoleFarmaceutico:  true,
	},
	ResourceReports: {
		entity.RoleAdministrator: true,
	},
	ResourceUsers: {
		entity.RoleAdministrator: true,
	},
}

// resourceOrder orden estable para listados de navegación.
var resourceOrder = []Resource{
	ResourceDashboard,
	ResourceCustomers,
	ResourceProducts,
	ResourceReports,
	ResourceUsers,
}

// IsAllowed informa si el rol puede acceder al recurso. Total y determinista:
// cualquier combinación desconocida devuelve false.
func IsAllowed(role entity.Role, resource Resource) bool {
	roles, ok := allowed[resource]
	if !ok {
		return false
	}
	return roles[role]
}

// Resources devuelve, en orden estable, los recursos visibles para el rol.
// Alimenta el filtrado del menú de navegación.
func Resources(role entity.Role) []Resource {
	out := make([]Resource, 0, len(resourceOrder))
	for _, res := range resourceOrder {
		if IsAllowed(role, res) {
			out = append(out, res)
		}
	}
	return out
}
