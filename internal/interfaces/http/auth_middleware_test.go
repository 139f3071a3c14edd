package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	"github.com/urufarma/lims-web/internal/infrastructure/storage"
	apphttp "github.com/urufarma/lims-web/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "lims-test"
)

var middlewareNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// buildSessionApp app mínima con SessionMiddleware + RequireSession y un handler que
// devuelve la sesión restaurada.
func buildSessionApp() *fiber.App {
	app := fiber.New()
	client := limsapi.NewClient("http://127.0.0.1:1/api", time.Second, nil)
	app.Use(apphttp.SessionMiddleware(storage.CookieOptions{Name: cookieName}, client, func() time.Time { return middlewareNow }))
	app.Get("/protected", apphttp.RequireSession(), func(c *fiber.Ctx) error {
		sess := apphttp.GetSessionStore(c).Current()
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": sess.Username,
			"role":     sess.PrimaryRole(),
			"services": apphttp.GetServices(c) != nil,
		})
	})
	return app
}

// makeToken firma un token cuyo exp es relativo al reloj fijo del middleware.
func makeToken(t *testing.T, sub string, roles []string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      sub,
		"username": "usuario",
		"roles":    roles,
		"iss":      testIssuer,
		"iat":      middlewareNow.Add(-2 * time.Hour).Unix(),
		"exp":      exp.Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return tok
}

func callProtected(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware / RequireSession
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_SinCookieRedirige(t *testing.T) {
	resp := callProtected(t, buildSessionApp(), "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestSessionMiddleware_TokenValido(t *testing.T) {
	// El cliente no verifica la firma: sólo decodifica los claims.
	tok := makeToken(t, "42", []string{"supervisor"}, middlewareNow.Add(time.Hour))
	resp := callProtected(t, buildSessionApp(), tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Services bool   `json:"services"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "usuario", body.Username)
	assert.Equal(t, "supervisor", body.Role)
	assert.True(t, body.Services)
}

func TestSessionMiddleware_TokenVencidoBorraCookie(t *testing.T) {
	tok := makeToken(t, "1", []string{"administrador"}, middlewareNow.Add(-time.Hour))
	resp := callProtected(t, buildSessionApp(), tok)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cleared := false
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName && ck.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "un token vencido se descarta")
}

func TestSessionMiddleware_TokenIlegible(t *testing.T) {
	resp := callProtected(t, buildSessionApp(), "no-es-un-jwt")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
