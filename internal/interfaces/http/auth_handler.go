package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/validation"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/infrastructure/limsapi"
	"github.com/urufarma/lims-web/pkg/logger"
)

// AuthHandler maneja login y logout del cliente web.
type AuthHandler struct {
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(log *logger.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

// LoginPage GET /login. Con sesión válida va directo al panel.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if store := GetSessionStore(c); store != nil && store.Current() != nil {
		return c.Redirect("/")
	}
	return render(c, fiber.StatusOK, "login", fiber.Map{"Title": "Iniciar sesión", "Form": validation.LoginForm{}})
}

// Login POST /login. Credenciales vacías no llegan al backend.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form validation.LoginForm
	if errs := bindForm(c, &form); !errs.Empty() {
		form.Password = ""
		return render(c, fiber.StatusUnprocessableEntity, "login", fiber.Map{"Title": "Iniciar sesión", "Form": form, "Errors": errs})
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	uc := auth.NewAuthUseCase(GetServices(c).Auth)
	sess, err := uc.Login(ctx, GetSessionStore(c), form.Payload())
	if err != nil {
		h.log.Warn().Err(err).Str("username", form.Username).Msg("login rechazado")
		msg := auth.MsgLoginFailed
		if !errors.Is(err, domain.ErrInvalidToken) {
			msg = limsapi.UserMessage(err, auth.MsgLoginFailed)
		}
		form.Password = ""
		return render(c, fiber.StatusUnauthorized, "login", fiber.Map{"Title": "Iniciar sesión", "Form": form, "LoginError": msg})
	}
	h.log.Info().Str("username", sess.Username).Str("role", sess.PrimaryRole()).Msg("sesión iniciada")
	return c.Redirect("/")
}

// Logout POST /logout. Idempotente.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if store := GetSessionStore(c); store != nil {
		store.Logout()
	}
	return c.Redirect("/login")
}
