package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjoc/farmacia-api/internal/application/auth"
	"github.com/marjoc/farmacia-api/internal/application/dto"
	apphttp "github.com/marjoc/farmacia-api/internal/interfaces/http"
)

// buildMeApp monta /api/auth/me directo sobre el handler; Me resuelve la
// identidad por sí mismo a partir del Bearer token.
func buildMeApp(t *testing.T) (*fiber.App, *auth.AuthUseCase, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     "farmacia-test",
	}, "marjoc.local")

	app := fiber.New()
	app.Get("/api/auth/me", apphttp.NewAuthHandler(uc).Me)
	return app, uc, repo
}

func loginToken(t *testing.T, uc *auth.AuthUseCase) string {
	t.Helper()
	out, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		FullName: "Ana Silva",
		Username: "ana.silva",
		Password: "secret1",
		Role:     "administrator",
	})
	require.NoError(t, err)
	login, err := uc.Login(context.Background(), dto.LoginRequest{
		Username: out.Username,
		Password: "secret1",
	})
	require.NoError(t, err)
	return "Bearer " + login.Token
}

func getMe(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMe_SesionValida_Retorna200(t *testing.T) {
	app, uc, _ := buildMeApp(t)
	resp := getMe(t, app, loginToken(t, uc))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ana.silva")
}

func TestMe_TokenBasura_Retorna401(t *testing.T) {
	app, _, _ := buildMeApp(t)
	resp := getMe(t, app, "Bearer no.es.jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestMe_UsuarioEliminado_Retorna401Revocada(t *testing.T) {
	app, uc, repo := buildMeApp(t)
	token := loginToken(t, uc)

	for id := range repo.users {
		require.NoError(t, repo.Delete(context.Background(), id))
	}

	resp := getMe(t, app, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TOKEN_REVOKED")
}

// Una base caída no invalida la sesión: el fallo se reporta como 500 para
// que el cliente reintente en lugar de cerrar sesión.
func TestMe_FalloDeBase_Retorna500(t *testing.T) {
	app, uc, repo := buildMeApp(t)
	token := loginToken(t, uc)

	repo.getByIDErr = errors.New("conexión rechazada")

	resp := getMe(t, app, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
}
