package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims estándar JWT más los campos que el LIMS agrega al token de acceso.
// Roles viaja como lista para que el cliente pueda decidir qué mostrar sin consultar la API.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Decoded vista de los claims que el cliente necesita para armar la sesión.
type Decoded struct {
	Subject   string
	Username  string
	Roles     []string
	ExpiresAt time.Time // cero si el token no trae exp
}

// Generate genera un token JWT firmado (HS256). Lo usa el backend simulado.
func Generate(secret, subject, username string, roles []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Username: username,
		Roles:    roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// Decode lee los claims SIN verificar la firma: el cliente no conoce el secreto y
// el backend vuelve a validar el token en cada request. No valida expiración;
// eso lo decide el Session Store.
func Decode(tokenString string) (*Decoded, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, mc); err != nil {
		return nil, fmt.Errorf("jwt: decodificar: %w", err)
	}

	d := &Decoded{
		Subject:  scalarString(mc["sub"]),
		Username: scalarString(mc["username"]),
		Roles:    roleList(mc),
	}
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("jwt: exp inválido: %w", err)
	}
	if exp != nil {
		d.ExpiresAt = exp.Time
	}
	return d, nil
}

// scalarString acepta sub numérico (el backend FastAPI emite el id de usuario como número).
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// roleList lee "roles" (lista) o el claim legado "role" (string).
func roleList(mc jwt.MapClaims) []string {
	out := []string{}
	if raw, ok := mc["roles"].([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := mc["role"].(string); ok && s != "" {
		out = append(out, s)
	}
	return out
}
