package storage

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions atributos de la cookie de sesión del cliente web.
type CookieOptions struct {
	Name   string
	Secure bool
}

// CookieTokenStorage guarda el token en una cookie HttpOnly del request en curso.
// Vive lo que dura el request: el middleware crea una por request.
type CookieTokenStorage struct {
	c    *fiber.Ctx
	opts CookieOptions
}

func NewCookieTokenStorage(c *fiber.Ctx, opts CookieOptions) *CookieTokenStorage {
	if opts.Name == "" {
		opts.Name = "lims_token"
	}
	return &CookieTokenStorage{c: c, opts: opts}
}

func (s *CookieTokenStorage) Load() (string, error) {
	return s.c.Cookies(s.opts.Name), nil
}

func (s *CookieTokenStorage) Save(token string) error {
	s.c.Cookie(&fiber.Cookie{
		Name:     s.opts.Name,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s *CookieTokenStorage) Clear() error {
	if s.c.Cookies(s.opts.Name) == "" {
		return nil
	}
	s.c.Cookie(&fiber.Cookie{
		Name:     s.opts.Name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return nil
}
