package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/marjoc/farmacia-api/internal/application/auth"
	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain"
)

// AuthHandler maneja bootstrap, login y la identidad de la sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// BootstrapStatus godoc
// @Summary      Estado del bootstrap
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.BootstrapStatusResponse
// @Router       /api/auth/bootstrap [get]
func (h *AuthHandler) BootstrapStatus(c *fiber.Ctx) error {
	has, err := h.uc.HasAnyUsers(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.BootstrapStatusResponse{Bootstrapped: has})
}

// Bootstrap godoc
// @Summary      Crear el primer administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BootstrapRequest  true  "full_name, username, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/bootstrap [post]
func (h *AuthHandler) Bootstrap(c *fiber.Ctx) error {
	var in dto.BootstrapRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FullName == "" || in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "full_name, username y password son requeridos"})
	}
	out, err := h.uc.CreateFirstAdministrator(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyBootstrapped):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_BOOTSTRAPPED", Message: "el sistema ya tiene usuarios"})
		case errors.Is(err, domain.ErrWeakPassword):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "WEAK_PASSWORD", Message: "password debe tener al menos 6 caracteres"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identidad de la sesión y recursos permitidos
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := bearerToken(c)
	out, err := h.uc.Me(c.UserContext(), token)
	if err != nil {
		// Solo los fallos de credencial son 401; un error de infraestructura
		// no debe expulsar una sesión válida.
		switch {
		case errors.Is(err, domain.ErrCredentialExpired):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "sesión expirada"})
		case errors.Is(err, domain.ErrCredentialRevoked):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "sesión revocada"})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}
