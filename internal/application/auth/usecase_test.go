package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoc/farmacia-api/internal/application/auth"
	"github.com/marjoc/farmacia-api/internal/application/dto"
	"github.com/marjoc/farmacia-api/internal/domain"
	"github.com/marjoc/farmacia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memUserRepo emula el repositorio de usuarios. El mutex cubre cada operación
// completa, igual que el advisory lock del bootstrap en la base real.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.LoginHandle == u.LoginHandle {
			return domain.ErrHandleTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) CreateFirstAdmin(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.users) > 0 {
		return domain.ErrAlreadyBootstrapped
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *memUserRepo) GetByHandle(_ context.Context, handle string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.LoginHandle == handle {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func newAuthFixture() (*memUserRepo, *auth.AuthUseCase) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "farmacia-test",
	}, "marjoc.local")
	return repo, uc
}

func anaRequest() dto.BootstrapRequest {
	return dto.BootstrapRequest{
		FullName: "Ana Silva",
		Username: "ana.silva",
		Password: "secret1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bootstrap
// ──────────────────────────────────────────────────────────────────────────────

func TestBootstrap_SistemaVacioCreaAdministrator(t *testing.T) {
	repo, uc := newAuthFixture()

	has, err := uc.HasAnyUsers(context.Background())
	require.NoError(t, err)
	assert.False(t, has, "sistema recién instalado no tiene usuarios")

	out, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "Ana Silva", out.FullName)
	assert.Equal(t, "ana.silva", out.Username)
	assert.Equal(t, string(entity.RoleAdministrator), out.Role, "el primer usuario siempre es administrator")
	assert.Equal(t, entity.UserStatusActive, out.Status)
	assert.NotEmpty(t, out.ID)

	has, err = uc.HasAnyUsers(context.Background())
	require.NoError(t, err)
	assert.True(t, has)

	// La dirección interna derivada no aparece en la respuesta.
	u, err := repo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana.silva@marjoc.local", u.Email)
}

func TestBootstrap_SegundoIntentoRechazado(t *testing.T) {
	_, uc := newAuthFixture()

	_, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	out, err := uc.CreateFirstAdministrator(context.Background(), dto.BootstrapRequest{
		FullName: "Otro Admin",
		Username: "otro.admin",
		Password: "secret2",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyBootstrapped)
	assert.Nil(t, out)
}

func TestBootstrap_PasswordDebil(t *testing.T) {
	_, uc := newAuthFixture()

	in := anaRequest()
	in.Password = "corta"
	out, err := uc.CreateFirstAdministrator(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	assert.Nil(t, out)

	// El rechazo no consume el bootstrap.
	has, err := uc.HasAnyUsers(context.Background())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBootstrap_DatosIncompletos(t *testing.T) {
	_, uc := newAuthFixture()

	out, err := uc.CreateFirstAdministrator(context.Background(), dto.BootstrapRequest{Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, out)
}

// Bootstrap concurrente: exactamente un ganador, los demás reciben
// ErrAlreadyBootstrapped.
func TestBootstrap_Concurrente_UnSoloGanador(t *testing.T) {
	repo, uc := newAuthFixture()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateFirstAdministrator(context.Background(), anaRequest())
		}(i)
	}
	wg.Wait()

	var winners, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case err == domain.ErrAlreadyBootstrapped:
			rejected++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, n-1, rejected)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "debe existir exactamente un usuario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y resolución de identidad
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesCorrectas(t *testing.T) {
	_, uc := newAuthFixture()
	_, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana.silva", out.User.Username)
	assert.Equal(t, string(entity.RoleAdministrator), out.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	_, uc := newAuthFixture()
	_, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, out)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	_, uc := newAuthFixture()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, out)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo, uc := newAuthFixture()
	created, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	repo.users[created.ID].Status = entity.UserStatusInactive

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, out)
}

func TestResolveIdentity_CredencialValida(t *testing.T) {
	_, uc := newAuthFixture()
	_, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "secret1"})
	require.NoError(t, err)

	user, err := uc.ResolveIdentity(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana.silva", user.LoginHandle)
	assert.Equal(t, entity.RoleAdministrator, user.Role)
}

// Token firmado de un usuario eliminado cuenta como credencial revocada.
func TestResolveIdentity_UsuarioEliminado_Revocada(t *testing.T) {
	_, uc := newAuthFixture()
	created, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(context.Background(), created.ID))

	user, err := uc.ResolveIdentity(context.Background(), login.Token)
	assert.ErrorIs(t, err, domain.ErrCredentialRevoked)
	assert.Nil(t, user)
}

func TestResolveIdentity_UsuarioInactivo_Revocada(t *testing.T) {
	repo, uc := newAuthFixture()
	created, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "secret1"})
	require.NoError(t, err)

	repo.users[created.ID].Status = entity.UserStatusInactive

	user, err := uc.ResolveIdentity(context.Background(), login.Token)
	assert.ErrorIs(t, err, domain.ErrCredentialRevoked)
	assert.Nil(t, user)
}

func TestResolveIdentity_TokenBasura(t *testing.T) {
	_, uc := newAuthFixture()

	user, err := uc.ResolveIdentity(context.Background(), "no.es.un.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, user)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_RolesValidos(t *testing.T) {
	_, uc := newAuthFixture()

	for i, role := range []string{"administrator", "farmaceutico", "operador_caixa"} {
		out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
			FullName: "Usuario Test",
			Username: "user" + string(rune('a'+i)),
			Password: "secret1",
			Role:     role,
		})
		require.NoError(t, err)
		assert.Equal(t, role, out.Role)
	}
}

func TestCreateUser_RolDesconocido(t *testing.T) {
	_, uc := newAuthFixture()

	out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		FullName: "Usuario Test",
		Username: "gerente1",
		Password: "secret1",
		Role:     "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, out)
}

func TestCreateUser_UsernameEnUso(t *testing.T) {
	_, uc := newAuthFixture()
	_, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		FullName: "Otra Ana",
		Username: "ana.silva",
		Password: "secret1",
		Role:     "farmaceutico",
	})
	assert.ErrorIs(t, err, domain.ErrHandleTaken)
	assert.Nil(t, out)
}

func TestMe_RecursosSegunRol(t *testing.T) {
	_, uc := newAuthFixture()
	_, err := uc.CreateFirstAdministrator(context.Background(), anaRequest())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana.silva", Password: "secret1"})
	require.NoError(t, err)

	me, err := uc.Me(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana.silva", me.User.Username)
	assert.Equal(t,
		[]string{"dashboard", "customers", "products", "reports", "users"},
		me.Resources,
		"administrator ve todos los recursos en orden estable")
}
