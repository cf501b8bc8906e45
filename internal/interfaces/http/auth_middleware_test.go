package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/bilkro/pos-api/internal/interfaces/http"
	pkgjwt "github.com/bilkro/pos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "bilkro-pos-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - opcionalmente RequireAdmin
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(adminOnly bool) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret)}
	if adminOnly {
		handlers = append(handlers, apphttp.RequireAdmin())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":     true,
			"userId": apphttp.GetUserID(c),
			"admin":  apphttp.IsAdmin(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera un JWT con el flag de admin indicado.
func tokenFor(t *testing.T, isAdmin bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, isAdmin, testIssuer, testExpMin)
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

// Caso 1: token válido → debe pasar (HTTP 200) y cargar el user_id.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, tokenFor(t, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), testUserID, "el handler debe ver el user_id del token")
}

// Caso 2: sin header Authorization → HTTP 401 con MISSING_TOKEN.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 3: esquema distinto de Bearer → HTTP 401.
func TestAuthMiddleware_EsquemaInvalido(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 4: token firmado con otro secreto → HTTP 401 con INVALID_TOKEN.
func TestAuthMiddleware_FirmaInvalida(t *testing.T) {
	otro, err := pkgjwt.Generate("otro-secreto", testUserID, false, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(false)
	resp := doRequest(t, app, "Bearer "+otro)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 5: token expirado → HTTP 401.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, false, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(false)
	resp := doRequest(t, app, "Bearer "+expirado)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token de admin en ruta admin → HTTP 200.
func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp(true)
	resp := doRequest(t, app, tokenFor(t, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un admin debe poder acceder a rutas de admin")
}

// Caso 2: token de usuario común en ruta admin → HTTP 403 Forbidden.
func TestRequireAdmin_UsuarioComunBloqueado(t *testing.T) {
	app := buildTestApp(true)
	resp := doRequest(t, app, tokenFor(t, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un usuario sin rol admin no debe acceder")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}
