package entity

import (
	"strings"
	"time"
)

// Role etiqueta opaca de rol. El set conocido no es cerrado: el backend puede emitir otros.
type Role string

// Roles que el LIMS usa hoy para decidir qué controles mostrar.
const (
	RoleAdmin      Role = "administrador"
	RoleSupervisor Role = "supervisor"
	RoleAnalyst    Role = "analista"
	RoleOperator   Role = "operador"
)

// Session vista decodificada del token actual. Se recalcula desde el token; no se persiste.
type Session struct {
	SubjectID string
	Username  string
	Roles     []Role // sin duplicados; el orden no importa
	ExpiresAt time.Time
}

// NewSession arma una sesión normalizando el set de roles.
func NewSession(subjectID, username string, roles []string, expiresAt time.Time) *Session {
	seen := make(map[Role]struct{}, len(roles))
	set := make([]Role, 0, len(roles))
	for _, r := range roles {
		role := Role(strings.TrimSpace(r))
		if role == "" {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		set = append(set, role)
	}
	return &Session{
		SubjectID: subjectID,
		Username:  username,
		Roles:     set,
		ExpiresAt: expiresAt,
	}
}

// Expired indica si la sesión venció respecto de now. Sin exp nunca vence.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// Intersects reporta si algún candidato pertenece al set de roles.
func (s *Session) Intersects(candidates ...Role) bool {
	for _, c := range candidates {
		for _, r := range s.Roles {
			if r == c {
				return true
			}
		}
	}
	return false
}

// PrimaryRole primer rol del token, para el pie del sidebar.
func (s *Session) PrimaryRole() string {
	if len(s.Roles) == 0 {
		return "sin rol"
	}
	return string(s.Roles[0])
}

// Initials dos primeras letras del usuario en mayúsculas ("US" si no hay nombre).
func (s *Session) Initials() string {
	r := []rune(strings.TrimSpace(s.Username))
	if len(r) == 0 {
		return "US"
	}
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
