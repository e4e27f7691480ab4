package dto

import "time"

// LoginRequest entrada de login: username elegido por el usuario + contraseña.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario resuelto.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// BootstrapRequest entrada para crear el primer administrador (sistema vacío).
type BootstrapRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// BootstrapStatusResponse informa si el sistema ya tiene usuarios.
type BootstrapStatusResponse struct {
	Bootstrapped bool `json:"bootstrapped"`
}

// CreateUserRequest entrada para que un administrador cree un usuario con rol.
type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=administrator farmaceutico operador_caixa"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// MeResponse identidad de la sesión + recursos que su rol puede ver.
// Resources alimenta el filtrado del menú de navegación en el cliente.
type MeResponse struct {
	User      UserResponse `json:"user"`
	Resources []string     `json:"resources"`
}
