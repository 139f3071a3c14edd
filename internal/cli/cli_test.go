package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/cli"
	"github.com/urufarma/lims-web/internal/stubapi"
)

type env struct {
	baseURL string
	session string
}

func newEnv(t *testing.T) env {
	t.Helper()
	store, err := stubapi.NewStore(stubapi.DefaultUsers, nil)
	require.NoError(t, err)
	stub := stubapi.New(stubapi.Config{
		AppName: "lims-stub-cli",
		JWT:     stubapi.JWTConfig{Secret: "cli-secret", ExpMinutes: 60, Issuer: "lims-stub"},
	}, store, nil)
	srv := httptest.NewServer(adaptor.FiberApp(stub))
	t.Cleanup(srv.Close)
	return env{baseURL: srv.URL + "/api", session: filepath.Join(t.TempDir(), "session.json")}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(cli.Options{BaseURL: e.baseURL, SessionFile: e.session, Timeout: 5 * time.Second})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLimsctl_SinSesion(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "whoami")
	assert.ErrorIs(t, err, cli.ErrNoSession)
	_, err = e.run(t, "orders")
	assert.ErrorIs(t, err, cli.ErrNoSession)
}

func TestLimsctl_LoginWhoamiLogout(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "login", "-u", "supervisor", "-p", "super123")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión iniciada como supervisor (supervisor)")
	_, statErr := os.Stat(e.session)
	require.NoError(t, statErr, "el token queda guardado")

	out, err = e.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "usuario: supervisor")
	assert.Contains(t, out, "roles: supervisor")

	out, err = e.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión cerrada")
	_, statErr = os.Stat(e.session)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLimsctl_LoginInvalido(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "login", "-u", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "La contraseña es obligatoria")

	_, err = e.run(t, "login", "-u", "admin", "-p", "mala")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usuario o contraseña incorrectos")
}

func TestLimsctl_OrdenesYTraza(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err)

	out, err := e.run(t, "orders", "-q", "l-2026")
	require.NoError(t, err)
	assert.Contains(t, out, "OM-0001")

	out, err = e.run(t, "orders", "-q", "no-existe")
	require.NoError(t, err)
	assert.Contains(t, out, "No se encontraron órdenes.")

	pdfPath := filepath.Join(t.TempDir(), "traza.pdf")
	out, err = e.run(t, "trace", "1", "--pdf", pdfPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Proceso #1 [en proceso]")
	assert.NotContains(t, out, "no coincide")
	raw, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	_, err = e.run(t, "trace", "abc")
	assert.Error(t, err)
}

func TestLimsctl_CambioDeEstado(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "login", "-u", "operador", "-p", "operador123")
	require.NoError(t, err)

	_, err = e.run(t, "change-state", "1", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El ID de estado debe ser positivo")

	out, err := e.run(t, "change-state", "1", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Proceso #1 ahora está pausado")

	_, err = e.run(t, "change-state", "1", "99")
	require.Error(t, err, "el backend rechaza estados desconocidos")
}
