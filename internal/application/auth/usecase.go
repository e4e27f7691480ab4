// Package auth concentra las operaciones sobre identidades: login, resolución
// de credenciales, el bootstrap del primer administrador y la administración
// de usuarios. La convención "<username>@<dominio>" del almacén de
// credenciales vive solo aquí y no se filtra al resto del negocio.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/application/policy"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
	"github.com/marjoc/farmacia-api/internal/domain/repository"
	"github.com/marjoc/farmacia-api/pkg/jwt"
)

// minPasswordLen longitud mínima de contraseña aceptada.
const minPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: bootstrap, login y administración de usuarios.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	jwtCfg       JWTConfig
	handleDomain string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, handleDomain string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, handleDomain: handleDomain}
}

// mailbox deriva la dirección interna que exige el almacén de credenciales a
// partir del username. Detalle de implementación: no sale de este paquete.
func (uc *AuthUseCase) mailbox(handle string) string {
	return handle + "@" + uc.handleDomain
}

// HasAnyUsers informa si existe al menos una identidad registrada.
// Devuelve false únicamente cuando el conteo es exactamente cero.
func (uc *AuthUseCase) HasAnyUsers(ctx context.Context) (bool, error) {
	n, err := uc.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateFirstAdministrator crea el primer usuario con rol administrator.
// Es el único camino que asigna ese rol sin autorización de un administrador
// existente, y solo es válido mientras no hay usuarios. El check-then-act se
// delega al repositorio, que lo serializa contra la base: si dos llamadas
// concurren, exactamente una gana y la otra recibe ErrAlreadyBootstrapped.
func (uc *AuthUseCase) CreateFirstAdministrator(ctx context.Context, in dto.BootstrapRequest) (*dto.UserResponse, error) {
	if in.FullName == "" || in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}
	user, err := uc.newUser(in.FullName, in.Username, in.Password, entity.RoleAdministrator)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.CreateFirstAdmin(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateUser crea un usuario con el rol indicado. Solo debe invocarse desde
// rutas ya autorizadas para administración de usuarios; el rol lo asigna el
// administrador que llama, nunca el propio usuario.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.FullName == "" || in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(entity.Role(in.Role)) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}
	existing, err := uc.userRepo.GetByHandle(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrHandleTaken
	}
	user, err := uc.newUser(in.FullName, in.Username, in.Password, entity.Role(in.Role))
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByHandle(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ResolveIdentity valida la credencial y devuelve la identidad con su rol
// releído de la base (refresh explícito, no estado ambiente). Una credencial
// firmada pero cuyo usuario ya no existe o está inactivo cuenta como revocada.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, token string) (*entity.User, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.ErrCredentialExpired
		}
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return nil, domain.ErrCredentialRevoked
	}
	return user, nil
}

/// Me arma la respuesta de identidad de sesión: usuario + recursos visibles
// para su rol (filtrado del menú de navegación en el cliente).
func (uc *AuthUseCase) Me(ctx context.Context, token string) (*dto.MeResponse, error) {
	user, err := uc.ResolveIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	resources := policy.Resources(user.Role)
	names := make([]string, 0, len(resources))
	for _, r := range resources {
		names = append(names, string(r))
	}
	return &dto.MeResponse{User: *toUserResponse(user), Resources: names}, nil
}

// ListUsers lista usuarios con paginación (administración de usuarios).
func (uc *AuthUseCase) ListUsers(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteUser elimina un usuario por ID.
func (uc *AuthUseCase) DeleteUser(ctx context.Context, id string) error {
	return uc.userRepo.Delete(ctx, id)
}

func (uc *AuthUseCase) newUser(fullName, handle, password string, role entity.Role) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		FullName:     fullName,
		LoginHandle:  handle,
		Email:        uc.mailbox(handle),
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.LoginHandle,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
