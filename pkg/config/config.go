package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente LIMS (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig
	Stub    StubConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP del cliente web.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig ubicación del API REST del LIMS (caja negra).
type BackendConfig struct {
	BaseURL string        // ej. http://localhost:8000/api
	Timeout time.Duration // 0 = sin timeout propio, se usa el del contexto
}

// SessionConfig almacenamiento local del token.
// En el cliente web el token vive en una cookie HttpOnly; en limsctl, en un archivo.
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	File         string
}

// StubConfig configuración del backend simulado (tests e2e y desarrollo local).
type StubConfig struct {
	Port       int
	JWTSecret  string
	ExpMinutes int
	SwaggerDoc string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LIMS_API_BASE_URL, SESSION_COOKIE_NAME, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "lims-web"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5173),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "LIMS_API_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout: time.Duration(getInt(v, "LIMS_API_TIMEOUT_SECONDS", 0)) * time.Second,
		},
		Session: SessionConfig{
			CookieName:   getString(v, "SESSION_COOKIE_NAME", "lims_token"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
			File:         getString(v, "SESSION_FILE", ".lims/session.json"),
		},
		Stub: StubConfig{
			Port:       getInt(v, "STUB_HTTP_PORT", 8000),
			JWTSecret:  getString(v, "STUB_JWT_SECRET", "lims-stub-secret"),
			ExpMinutes: getInt(v, "STUB_JWT_EXPIRATION_MINUTES", 480),
			SwaggerDoc: getString(v, "STUB_SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: LIMS_API_BASE_URL vacío")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
