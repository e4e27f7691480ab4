package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/marjoc/farmacia-api/internal/application/auth"
	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/application/policy"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// Locals keys para la identidad resuelta en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// bearerToken extrae el token del header Authorization. Devuelve "" si falta
// o el formato no es Bearer.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthMiddleware resuelve la identidad de la sesión: valida el Bearer Token
// y verifica que el usuario siga existiendo y activo. Un token firmado de un
// usuario eliminado o inactivo se rechaza como revocado.
func AuthMiddleware(uc *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization: Bearer <token> requerido"})
		}
		user, err := uc.ResolveIdentity(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrCredentialExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "la sesión expiró, inicie sesión de nuevo"})
			case errors.Is(err, domain.ErrCredentialRevoked):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "la credencial fue revocada"})
			case errors.Is(err, domain.ErrUnauthorized):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
			default:
				// Un fallo de infraestructura al resolver la identidad no es
				// un problema de credenciales.
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo resolver la identidad"})
			}
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, string(user.Role))
		return c.Next()
	}
}

// RequireResource autoriza el acceso a un recurso según el rol de la sesión.
// Debe ir después de AuthMiddleware. Rol desconocido niega todo.
func RequireResource(resource policy.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := entity.Role(GetRole(c))
		if !policy.IsAllowed(role, resource) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "su rol no tiene acceso a " + string(resource),
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
