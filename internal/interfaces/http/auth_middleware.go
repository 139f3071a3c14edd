package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	"github.com/urufarma/lims-web/internal/infrastructure/storage"
)

// Locals keys para la sesión y los servicios del request.
const (
	LocalSessionStore = "session_store"
	LocalServices     = "services"
)

// SessionMiddleware restaura la sesión desde la cookie y deja en c.Locals el SessionStore
// y los servicios del API firmados con su token. Un token vencido o ilegible borra la cookie.
func SessionMiddleware(cookie storage.CookieOptions, client *limsapi.Client, now auth.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := auth.NewSessionStore(storage.NewCookieTokenStorage(c, cookie), now)
		store.Restore()
		c.Locals(LocalSessionStore, store)
		c.Locals(LocalServices, limsapi.NewServices(client.WithToken(store)))
		return c.Next()
	}
}

// RequireSession redirige a /login si no hay sesión válida. Debe ir después de SessionMiddleware.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store := GetSessionStore(c); store == nil || store.Current() == nil {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// GetSessionStore store del request (nil fuera de SessionMiddleware).
func GetSessionStore(c *fiber.Ctx) *auth.SessionStore {
	store, _ := c.Locals(LocalSessionStore).(*auth.SessionStore)
	return store
}

// GetServices servicios del API para el request actual.
func GetServices(c *fiber.Ctx) *limsapi.Services {
	svc, _ := c.Locals(LocalServices).(*limsapi.Services)
	return svc
}

// GetUserID id numérico del usuario de la sesión (0 si el sub no es numérico).
func GetUserID(c *fiber.Ctx) int64 {
	store := GetSessionStore(c)
	if store == nil || store.Current() == nil {
		return 0
	}
	id, _ := strconv.ParseInt(store.Current().SubjectID, 10, 64)
	return id
}

// requestContext contexto de las llamadas al backend, cancelado al salir del handler.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithCancel(c.UserContext())
}

// allow verifica la capacidad antes de escribir; sin permiso deja un toast y vuelve a back.
func allow(c *fiber.Ctx, capability auth.Capability, back string) (bool, error) {
	if auth.Can(GetSessionStore(c), capability) {
		return true, nil
	}
	setFlash(c, flashError, "No tiene permisos para esta operación")
	return false, c.Redirect(back)
}

// fail traduce un error del backend a toast + redirect. Un 401 cierra la sesión local.
func fail(c *fiber.Ctx, err error, fallback, back string) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		if store := GetSessionStore(c); store != nil {
			store.Logout()
		}
		return c.Redirect("/login")
	}
	setFlash(c, flashError, limsapi.UserMessage(err, fallback))
	return c.Redirect(back)
}
