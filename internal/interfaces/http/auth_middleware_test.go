package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaranes/albaranes-api/internal/domain"
	"github.com/albaranes/albaranes-api/internal/domain/entity"
	apphttp "github.com/albaranes/albaranes-api/internal/interfaces/http"
	pkgjwt "github.com/albaranes/albaranes-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "albaranes-test"
	testExpMin    = 60
)

// stubUsers repositorio mínimo: GetByID responde según los mapas; el resto de
// operaciones no se ejecutan desde el middleware.
type stubUsers struct {
	active map[string]*entity.User
	failed bool
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.failed {
		return nil, context.DeadlineExceeded
	}
	return s.active[id], nil
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) GetByResetToken(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) GetByInvitationToken(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUsers) Update(context.Context, *entity.User) error { return nil }
func (s *stubUsers) Archive(context.Context, string) error      { return domain.ErrNotFound }
func (s *stubUsers) HardDelete(context.Context, string) error   { return domain.ErrNotFound }

func activeUsers() *stubUsers {
	return &stubUsers{active: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: "ana@test.local", Verified: true, Role: entity.RoleUser},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT, comprobar la cuenta y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(users *stubUsers, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, users)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":      true,
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenForRole genera un JWT con el rol indicado para el usuario de test.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeaderEs401(t *testing.T) {
	app := buildTestApp(activeUsers())
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Header con formato incorrecto → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoIncorrectoEs401(t *testing.T) {
	app := buildTestApp(activeUsers())
	resp := doRequest(t, app, "Token abc.def.ghi")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token firmado con otro secreto → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_FirmaIncorrectaEs401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto-distinto-al-real", testUserID, entity.RoleUser, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(activeUsers())
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token expirado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenExpiradoEs401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleUser, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(activeUsers())
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token válido pero cuenta archivada (o inexistente) → HTTP 401
// ACCOUNT_NOT_AVAILABLE: el archivado revoca el token en la práctica.
func TestAuthMiddleware_CuentaArchivadaEs401(t *testing.T) {
	app := buildTestApp(&stubUsers{active: map[string]*entity.User{}})
	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCOUNT_NOT_AVAILABLE")
}

// Fallo del repositorio al comprobar la cuenta → HTTP 500 INTERNAL.
func TestAuthMiddleware_FalloDeRepositorioEs500(t *testing.T) {
	app := buildTestApp(&stubUsers{failed: true})
	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

// Token válido y cuenta activa → HTTP 200 con los locals cargados.
func TestAuthMiddleware_TokenValidoCargaLocals(t *testing.T) {
	app := buildTestApp(activeUsers())
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAutonomo))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleAutonomo, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_UserAccedeRutaUser(t *testing.T) {
	app := buildTestApp(activeUsers(), entity.RoleUser)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleUser))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"user debe poder acceder a ruta restringida a user")
}

// El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_AutonomoAccedeRutaUserOAutonomo(t *testing.T) {
	app := buildTestApp(activeUsers(), entity.RoleUser, entity.RoleAutonomo)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAutonomo))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"autonomo debe poder acceder a ruta que permite user o autonomo")
}

// El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_InvitadoBloqueadoEnRutaUser(t *testing.T) {
	app := buildTestApp(activeUsers(), entity.RoleUser)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleInvitado))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"invitado no debe poder acceder a ruta restringida a user")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN_ROLE")
}
