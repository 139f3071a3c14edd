package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	nethttp "net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/manufacturing"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/domain/entity"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
)

//go:embed views
var viewsFS embed.FS

const layout = "layouts/main"

// NewViews motor de plantillas embebidas con las funciones que usan las vistas.
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFuncMap(template.FuncMap{
		"can":   canFunc,
		"badge": manufacturing.BadgeClass,
		"ts":    func(t entity.Timestamp) string { return t.Display() },
		"optid": optionalID,
		"itoa":  func(n int64) string { return strconv.FormatInt(n, 10) },
		"dict":  dict,
		"kb":    func(n int64) string { return fmt.Sprintf("%.1f KB", float64(n)/1024) },
	})
	return engine
}

// canFunc gate de las vistas: {{if can .Store "equipment.write"}}.
func canFunc(store *auth.SessionStore, capability string) bool {
	if store == nil {
		return false
	}
	return auth.Can(store, auth.Capability(capability))
}

func optionalID(id *int64) string {
	if id == nil {
		return "—"
	}
	return strconv.FormatInt(*id, 10)
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: cantidad impar de argumentos")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: clave %v no es string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// render completa los datos comunes (sesión, toast, ruta) y renderiza con el layout.
func render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	store := GetSessionStore(c)
	data["Store"] = store
	if store != nil {
		data["Session"] = store.Current()
	}
	if f := popFlash(c); f != nil {
		if _, set := data["Flash"]; !set {
			data["Flash"] = f
		}
	}
	if _, set := data["Errors"]; !set {
		data["Errors"] = validation.FieldErrors{}
	}
	data["Path"] = c.Path()
	return c.Status(status).Render(view, data, layout)
}

// loadError deja el fallo de carga como toast. Devuelve true si fue un 401: la sesión
// se cerró y el llamador debe redirigir a /login.
func loadError(c *fiber.Ctx, data fiber.Map, err error, fallback string) bool {
	if errors.Is(err, domain.ErrUnauthorized) {
		if store := GetSessionStore(c); store != nil {
			store.Logout()
		}
		return true
	}
	data["Flash"] = &Flash{Kind: flashError, Message: limsapi.UserMessage(err, fallback)}
	return false
}

// bindForm parsea el body (urlencoded o multipart) en form y lo valida.
func bindForm(c *fiber.Ctx, form any) validation.FieldErrors {
	if err := c.BodyParser(form); err != nil {
		return validation.FieldErrors{"_": "Formulario inválido"}
	}
	return validation.Validate(form)
}

// queryID id del modal de edición (?modal=edit&id=N); 0 si falta o no es válido.
func queryID(c *fiber.Ctx) int64 {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func paramID(c *fiber.Ctx) int64 {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0
	}
	return int64(id)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
