package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Autenticación y bootstrap.
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrHandleTaken         = errors.New("el username ya está registrado")
	ErrWeakPassword        = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrAlreadyBootstrapped = errors.New("el sistema ya tiene usuarios registrados")
	ErrCredentialExpired   = errors.New("credencial expirada")
	ErrCredentialRevoked   = errors.New("credencial revocada")

	// Ledger de ventas.
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrLedgerInconsistent = errors.New("descuento de stock sin registro de venta correspondiente")
)
