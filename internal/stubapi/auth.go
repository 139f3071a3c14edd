package stubapi

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalRoles  = "roles"
)

// login verifica usuario/password y genera el JWT con los roles del usuario.
func (s *Store) login(in dto.LoginRequest, cfg JWTConfig) (*dto.LoginResponse, error) {
	s.mu.RLock()
	u, ok := s.findUser(in.Username)
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !u.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(cfg.Secret, strconv.FormatInt(u.ID, 10), u.Username, u.Roles, cfg.Issuer, cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// loginHandler POST /api/auth/login (form-urlencoded, como OAuth2PasswordRequestForm).
func loginHandler(store *Store, cfg JWTConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.LoginRequest
		if err := c.BodyParser(&in); err != nil {
			return detail(c, fiber.StatusUnprocessableEntity, "cuerpo inválido")
		}
		if in.Username == "" || in.Password == "" {
			return detail(c, fiber.StatusUnprocessableEntity, "username y password son requeridos")
		}
		out, err := store.login(in, cfg)
		switch err {
		case nil:
			return c.JSON(out)
		case domain.ErrUnauthorized:
			return detail(c, fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
		case domain.ErrForbidden:
			return detail(c, fiber.StatusForbidden, "Usuario inactivo")
		default:
			return detail(c, fiber.StatusInternalServerError, err.Error())
		}
	}
}

// AuthMiddleware valida el Bearer Token JWT y carga usuario y roles en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido", Detail: "Not authenticated"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>", Detail: "Not authenticated"})
		}
		tokenString := strings.TrimSpace(parts[1])
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado", Detail: "Could not validate credentials"})
		}
		userID, _ := strconv.ParseInt(claims.Subject, 10, 64)
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

// RequireRole autoriza si el token tiene alguno de los roles. Debe ir después de AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no trae roles", Detail: "Not authenticated"})
		}
		for _, r := range roles {
			for _, a := range allowed {
				if r == a {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso", Detail: "No tiene permisos para esta operación"})
	}
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRoles devuelve los roles del token.
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}

// detail responde con el formato de error de FastAPI ({"detail": "..."}).
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}
