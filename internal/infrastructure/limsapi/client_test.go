package limsapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// newServer levanta un backend falso y devuelve un cliente apuntando a /api.
func newServer(t *testing.T, h http.HandlerFunc) *limsapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return limsapi.NewClient(srv.URL+"/api", 0, nil)
}

func TestClient_EnviaBearerYRequestID(t *testing.T) {
	var auth, reqID string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get(limsapi.RequestIDHeader)
		assert.Equal(t, "/api/equipos/", r.URL.Path)
		_, _ = w.Write([]byte(`[{"equipo_instrumento_id":1,"codigo":"EQ-1","nombre":"Autoclave"}]`))
	})

	list, err := limsapi.NewEquipmentService(c.WithToken(staticToken("abc"))).List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Autoclave", list[0].Name)
	assert.Equal(t, "Bearer abc", auth)
	assert.NotEmpty(t, reqID)
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	var hasAuth bool
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := limsapi.NewPlantService(c.WithToken(staticToken(""))).List(context.Background())

	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestClient_PaginacionSkipLimit(t *testing.T) {
	var q string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := limsapi.NewManufacturingService(c).ListOrders(context.Background(), dto.PageRequest{})

	require.NoError(t, err)
	assert.Equal(t, "limit=100&skip=0", q)
}

func TestAuthService_LoginFormURLEncoded(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "admin", r.PostForm.Get("username"))
		assert.Equal(t, "admin123", r.PostForm.Get("password"))
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})

	resp, err := limsapi.NewAuthService(c).Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
}

func TestClient_ErroresHTTP(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"404 con detail", http.StatusNotFound, `{"detail":"Equipo no encontrado"}`, domain.ErrNotFound, "Equipo no encontrado"},
		{"401", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`, domain.ErrUnauthorized, "Could not validate credentials"},
		{"403 con message", http.StatusForbidden, `{"message":"sin permisos"}`, domain.ErrForbidden, "sin permisos"},
		{"422 lista FastAPI", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","codigo"],"msg":"field required"}]}`, domain.ErrValidation, "field required"},
		{"500 texto plano", http.StatusInternalServerError, "Internal Server Error", domain.ErrUnavailable, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := limsapi.NewEquipmentService(c).Get(context.Background(), 9)

			var apiErr *limsapi.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.Equal(t, tc.message, limsapi.UserMessage(err, "genérico"))
		})
	}
}

func TestClient_BackendInaccesible(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := limsapi.NewClient(url+"/api", 0, nil)

	_, err := limsapi.NewDashboardService(c).Stats(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, "genérico", limsapi.UserMessage(err, "genérico"))
}

func TestClient_ContextoCanceladoNoLlegaAlBackend(t *testing.T) {
	called := false
	c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := limsapi.NewEquipmentService(c).List(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestManufacturingService_ChangeState(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/manufactura/procesos/5/estado", r.URL.Path)
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]int64{"nuevo_estado_id": 3, "usuario_id": 1}, body)
		_, _ = w.Write([]byte(`{"manufactura_id":5,"orden_manufactura_id":2,"estado_manufactura_id":3}`))
	})

	p, err := limsapi.NewManufacturingService(c).ChangeState(context.Background(), 5, dto.StateChangeRequest{NewStateID: 3, UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.StateID)
}

func TestDocumentService_UploadMultipart(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "equipo", r.FormValue("entidad_tipo"))
		assert.Equal(t, "7", r.FormValue("entidad_id"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "manual.pdf", hdr.Filename)
		assert.Equal(t, "contenido", string(content))
		_, _ = w.Write([]byte(`{"documento_id":1,"nombre":"manual.pdf","entidad_tipo":"equipo","entidad_id":7}`))
	})

	doc, err := limsapi.NewDocumentService(c).Upload(context.Background(), dto.UploadDocumentRequest{
		EntityType: "equipo", EntityID: 7, FileName: "manual.pdf", Content: strings.NewReader("contenido"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.ID)
}

func TestExportService_NombreDeArchivo(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/exports/plantas.csv", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="plantas_2026.csv"`)
		_, _ = w.Write([]byte("codigo,nombre\nP1,Norte\n"))
	})

	exp, err := limsapi.NewExportService(c).Plants(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "plantas_2026.csv", exp.FileName)
	assert.Contains(t, string(exp.Body), "P1,Norte")
}
