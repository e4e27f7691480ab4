package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Address  string `json:"address" validate:"omitempty,max=300"`
	Document string `json:"document" validate:"omitempty,max=50"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateCustomerRequest entrada parcial para actualizar un cliente.
type UpdateCustomerRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Document *string `json:"document,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Document  string    `json:"document,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
