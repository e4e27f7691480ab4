package entity

import "time"

// Customer representa un cliente de la farmacia (entidad CRUD simple).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Document  string // documento de identidad
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
