package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "lims_flash"

type flashKind string

const (
	flashSuccess flashKind = "success"
	flashError   flashKind = "error"
)

// Flash toast de un solo uso que sobrevive al redirect post-escritura.
type Flash struct {
	Kind    flashKind
	Message string
}

func setFlash(c *fiber.Ctx, kind flashKind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(kind) + "|" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash lee y borra el toast pendiente.
func popFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{Name: flashCookie, Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	val, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(val, "|")
	if !ok || msg == "" {
		return nil
	}
	return &Flash{Kind: flashKind(kind), Message: msg}
}
