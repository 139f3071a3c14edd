package http_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	"github.com/urufarma/lims-web/internal/infrastructure/pdf"
	"github.com/urufarma/lims-web/internal/infrastructure/storage"
	apphttp "github.com/urufarma/lims-web/internal/interfaces/http"
	"github.com/urufarma/lims-web/internal/stubapi"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno e2e: backend simulado + cliente web, con la sesión de admin guardada
// una sola vez en un archivo y reutilizada por todos los escenarios.
// ──────────────────────────────────────────────────────────────────────────────

const (
	cookieName = "lims_token"
	stubSecret = "e2e-secret"
)

var (
	backendURL   string
	backendPosts atomic.Int64
	adminSession *storage.FileTokenStorage
)

func TestMain(m *testing.M) {
	store, err := stubapi.NewStore(stubapi.DefaultUsers, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "stub store:", err)
		os.Exit(1)
	}
	stub := stubapi.New(stubapi.Config{
		AppName: "lims-stub-e2e",
		JWT:     stubapi.JWTConfig{Secret: stubSecret, ExpMinutes: 60, Issuer: "lims-stub"},
	}, store, nil)
	handler := adaptor.FiberApp(stub)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			backendPosts.Add(1)
		}
		handler.ServeHTTP(w, r)
	}))
	backendURL = srv.URL + "/api"

	dir, err := os.MkdirTemp("", "lims-e2e-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, "tempdir:", err)
		os.Exit(1)
	}
	adminSession = storage.NewFileTokenStorage(filepath.Join(dir, "admin.json"))
	if err := saveSnapshot(adminSession, "admin", "admin123"); err != nil {
		fmt.Fprintln(os.Stderr, "snapshot admin:", err)
		os.Exit(1)
	}

	code := m.Run()
	srv.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// saveSnapshot inicia sesión por la UI y guarda el token de la cookie resultante.
func saveSnapshot(dst *storage.FileTokenStorage, user, pass string) error {
	resp, err := newWebApp().Test(formRequest("/login", "", url.Values{"username": {user}, "password": {pass}}), -1)
	if err != nil {
		return err
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName && ck.Value != "" {
			return dst.Save(ck.Value)
		}
	}
	return fmt.Errorf("login de %s sin cookie de sesión (status %d)", user, resp.StatusCode)
}

func newWebApp() *fiber.App {
	return apphttp.NewApp(apphttp.RouterDeps{
		AppName: "lims-web-e2e",
		Client:  limsapi.NewClient(backendURL, 5*time.Second, nil),
		Cookie:  storage.CookieOptions{Name: cookieName},
		Reports: pdf.NewTraceReportGenerator("LIMS"),
	})
}

func formRequest(path, token string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	return req
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := adminSession.Load()
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	return tok
}

func get(t *testing.T, app *fiber.App, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func post(t *testing.T, app *fiber.App, path, token string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(formRequest(path, token, form), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func loginAs(t *testing.T, app *fiber.App, user, pass string) string {
	t.Helper()
	resp, _ := post(t, app, "/login", "", url.Values{"username": {user}, "password": {pass}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName {
			return ck.Value
		}
	}
	t.Fatalf("login de %s sin cookie", user)
	return ""
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestE2E_RaizSinSesionRedirigeALogin(t *testing.T) {
	resp, _ := get(t, newWebApp(), "/", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestE2E_LoginAdminMuestraPanel(t *testing.T) {
	app := newWebApp()
	token := loginAs(t, app, "admin", "admin123")

	resp, body := get(t, app, "/", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Panel de Control")
	assert.Contains(t, body, "Equipos Activos")
	assert.Contains(t, body, "Análisis Pendientes")
	assert.Contains(t, body, "Muestras Hoy")
	assert.Contains(t, body, `data-testid="btn-logout"`)
	assert.Contains(t, body, `data-testid="nav-manufacturing"`)
}

func TestE2E_CredencialesInvalidas(t *testing.T) {
	resp, body := post(t, newWebApp(), "/login", "", url.Values{"username": {"admin"}, "password": {"incorrecta"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, `data-testid="login-error"`)
	for _, ck := range resp.Cookies() {
		assert.NotEqual(t, cookieName, ck.Name, "no debe quedar cookie de sesión")
	}
}

func TestE2E_LoginConTokenYaVencido(t *testing.T) {
	// el stub emite tokens de 60 minutos; el reloj del cliente va dos horas adelante
	app := apphttp.NewApp(apphttp.RouterDeps{
		AppName: "lims-web-e2e",
		Client:  limsapi.NewClient(backendURL, 5*time.Second, nil),
		Cookie:  storage.CookieOptions{Name: cookieName},
		Reports: pdf.NewTraceReportGenerator("LIMS"),
		Now:     func() time.Time { return time.Now().Add(2 * time.Hour) },
	})

	resp, body := post(t, app, "/login", "", url.Values{"username": {"admin"}, "password": {"admin123"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, `data-testid="login-error"`)
	assert.Contains(t, body, "Verifique sus credenciales")
	for _, ck := range resp.Cookies() {
		assert.False(t, ck.Name == cookieName && ck.Value != "", "no debe quedar cookie de sesión")
	}
}

func TestE2E_LoginVacioNoLlamaAlBackend(t *testing.T) {
	before := backendPosts.Load()
	resp, body := post(t, newWebApp(), "/login", "", url.Values{"username": {"  "}, "password": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "El usuario es obligatorio")
	assert.Equal(t, before, backendPosts.Load())
}

func TestE2E_EquipoSinNombreNoLlegaAlBackend(t *testing.T) {
	app := newWebApp()
	before := backendPosts.Load()

	resp, body := post(t, app, "/equipments", adminToken(t), url.Values{
		"codigo": {"EQ-X"}, "nombre": {"   "}, "tipo_equipo_id": {"1"}, "estado_equipo_id": {"1"}, "area_id": {"1"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "obligatorio")
	assert.Contains(t, body, `data-testid="equipo-submit"`, "el modal sigue abierto")
	assert.Equal(t, before, backendPosts.Load())
}

func TestE2E_CrearEquipo(t *testing.T) {
	app := newWebApp()
	token := adminToken(t)

	resp, _ := post(t, app, "/equipments", token, url.Values{
		"codigo": {"EQ-E2E"}, "nombre": {"Espectrofotómetro"}, "tipo_equipo_id": {"1"}, "estado_equipo_id": {"1"}, "area_id": {"1"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/equipments", resp.Header.Get("Location"))

	_, body := get(t, app, "/equipments?q=espectrofotometro", token)
	assert.Contains(t, body, "Espectrofotómetro", "la búsqueda ignora tildes")
	assert.NotContains(t, body, "Autoclave")
}

func TestE2E_ModalNuevaPlanta(t *testing.T) {
	resp, body := get(t, newWebApp(), "/plants?modal=new", adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Nueva Planta")
	assert.Contains(t, body, `data-testid="planta-nombre"`)
	assert.Contains(t, body, `data-testid="planta-submit"`)
}

func TestE2E_RutaProtegidaSinSesion(t *testing.T) {
	for _, path := range []string{"/equipments", "/plants", "/samples", "/analysis", "/inventory", "/manufacturing"} {
		resp, _ := get(t, newWebApp(), path, "")
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestE2E_VisibilidadPorRol(t *testing.T) {
	app := newWebApp()

	_, body := get(t, app, "/equipments", adminToken(t))
	assert.Contains(t, body, `data-testid="btn-nuevo-equipo"`)

	operador := loginAs(t, app, "operador", "operador123")
	_, body = get(t, app, "/equipments", operador)
	assert.NotContains(t, body, `data-testid="btn-nuevo-equipo"`)
	_, body = get(t, app, "/manufacturing", operador)
	assert.Contains(t, body, "Nueva Orden")

	analista := loginAs(t, app, "analista", "analista123")
	_, body = get(t, app, "/manufacturing", analista)
	assert.NotContains(t, body, "Nueva Orden")
}

func TestE2E_EscrituraSinPermisoNoLlegaAlBackend(t *testing.T) {
	app := newWebApp()
	operador := loginAs(t, app, "operador", "operador123")
	before := backendPosts.Load()

	resp, _ := post(t, app, "/equipments", operador, url.Values{"codigo": {"EQ-Y"}, "nombre": {"Balanza"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, before, backendPosts.Load())
}

func TestE2E_TrazabilidadYCambioDeEstado(t *testing.T) {
	app := newWebApp()
	token := adminToken(t)

	resp, body := get(t, app, "/manufacturing/orders/1", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "OM-0001")
	assert.Contains(t, body, "en proceso")

	resp, body = post(t, app, "/manufacturing/processes/1/state?orden=1", token, url.Values{"nuevo_estado_id": {""}, "usuario_id": {"1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "El ID de estado debe ser positivo")

	resp, _ = post(t, app, "/manufacturing/processes/1/state?orden=1", token, url.Values{"nuevo_estado_id": {"3"}, "usuario_id": {"1"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/manufacturing/orders/1", resp.Header.Get("Location"))

	_, body = get(t, app, "/manufacturing/orders/1", token)
	assert.Contains(t, body, "pausado")
	assert.NotContains(t, body, "El historial no coincide")
}

func TestE2E_ReportePDF(t *testing.T) {
	resp, body := get(t, newWebApp(), "/manufacturing/orders/1/trace.pdf", adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestE2E_ExportCSV(t *testing.T) {
	resp, body := get(t, newWebApp(), "/exports/equipos.csv", adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "equipos.csv")
	assert.Contains(t, body, "EQ-001")
}

func TestE2E_RutaDesconocidaVuelveAlPanel(t *testing.T) {
	resp, _ := get(t, newWebApp(), "/no-existe", adminToken(t))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestE2E_Logout(t *testing.T) {
	app := newWebApp()
	token := loginAs(t, app, "supervisor", "super123")

	resp, _ := post(t, app, "/logout", token, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	cleared := false
	for _, ck := range resp.Cookies() {
		if ck.Name == cookieName && ck.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout borra la cookie")
}
