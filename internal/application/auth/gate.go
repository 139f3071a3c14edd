package auth

import "github.com/urufarma/lims-web/internal/domain/entity"

// RoleChecker lo implementa SessionStore; los tests usan fakes.
type RoleChecker interface {
	HasRole(candidates ...entity.Role) bool
}

// Allowed true si required está vacío o si la sesión tiene alguno de esos roles.
// El gate es sólo una ayuda de interfaz: el backend sigue autorizando cada request.
func Allowed(checker RoleChecker, required []entity.Role) bool {
	if len(required) == 0 {
		return true
	}
	if checker == nil {
		return false
	}
	return checker.HasRole(required...)
}

// Gate devuelve build() si el usuario pasa el gate; si no, fallback() o el valor cero.
func Gate[T any](checker RoleChecker, required []entity.Role, build func() T, fallback func() T) T {
	if Allowed(checker, required) {
		return build()
	}
	if fallback != nil {
		return fallback()
	}
	var zero T
	return zero
}
