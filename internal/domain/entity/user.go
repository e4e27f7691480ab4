package entity

import "time"

// Role es el conjunto cerrado de roles del sistema. Se modela como tipo propio
// para que la política de acceso sea exhaustiva: un rol desconocido nunca cae
// en un permiso por defecto.
type Role string

const (
	RoleAdministrator Role = "administrator"  // acceso total, incluye administración de usuarios
	RoleFarmaceutico  Role = "farmaceutico"   // sin reportes ni administración de usuarios
	RoleOperadorCaixa Role = "operador_caixa" // solo dashboard y clientes
)

// ValidRole informa si el string corresponde a un rol del conjunto cerrado.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdministrator, RoleFarmaceutico, RoleOperadorCaixa:
		return true
	}
	return false
}

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa una identidad del sistema. Cada identidad tiene exactamente
// un rol, asignado en la creación (bootstrap para el primero, un administrador
// para los siguientes); no existe auto-escalamiento.
type User struct {
	ID           string
	FullName     string
	LoginHandle  string // identificador elegido por el usuario, case-sensitive
	Email        string // dirección derivada del handle para el almacén de credenciales
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
