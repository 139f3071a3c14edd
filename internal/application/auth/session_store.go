package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/domain/entity"
	"github.com/urufarma/lims-web/pkg/jwt"
)

// TokenStorage almacenamiento local y síncrono del token crudo (cookie, archivo, memoria).
// Load devuelve "" sin error cuando no hay token guardado.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Clock permite fijar el "ahora" en tests.
type Clock func() time.Time

// SessionStore mantiene el token actual y su sesión decodificada.
// El token es la fuente de verdad; la sesión se recalcula a partir de él.
// Se escribe sólo en Login/Logout/Restore y se lee desde muchos componentes.
type SessionStore struct {
	mu      sync.RWMutex
	storage TokenStorage
	now     Clock
	token   string
	session *entity.Session
}

// NewSessionStore construye el store. No lee el storage: llamar a Restore para inicializar.
func NewSessionStore(storage TokenStorage, now Clock) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{storage: storage, now: now}
}

// Login decodifica el token, lo persiste y deja la sesión en memoria.
// Devuelve domain.ErrInvalidToken si los claims no se pueden decodificar; en ese caso
// no se toca el estado previo.
func (s *SessionStore) Login(token string) (*entity.Session, error) {
	sess, err := decodeSession(token)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Save(token); err != nil {
		return nil, fmt.Errorf("auth: guardar token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.session = sess
	s.mu.Unlock()
	return sess, nil
}

// Restore lee el token persistido al iniciar. Sin token devuelve nil. Si el storage o el
// token no se pueden leer, o el token ya venció, limpia el storage y devuelve nil sin reportar error.
func (s *SessionStore) Restore() *entity.Session {
	token, err := s.storage.Load()
	if err != nil {
		s.Logout()
		return nil
	}
	if token == "" {
		s.reset()
		return nil
	}
	sess, err := decodeSession(token)
	if err != nil || sess.Expired(s.now()) {
		s.Logout()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.session = sess
	s.mu.Unlock()
	return sess
}

// Logout borra token persistido y sesión en memoria. Idempotente.
func (s *SessionStore) Logout() {
	_ = s.storage.Clear()
	s.reset()
}

func (s *SessionStore) reset() {
	s.mu.Lock()
	s.token = ""
	s.session = nil
	s.mu.Unlock()
}

// Current sesión actual o nil.
func (s *SessionStore) Current() *entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token token crudo actual ("" sin sesión). Lo consume el cliente del API.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasRole true si hay sesión y su set de roles intersecta candidates.
func (s *SessionStore) HasRole(candidates ...entity.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return false
	}
	return s.session.Intersects(candidates...)
}

func decodeSession(token string) (*entity.Session, error) {
	claims, err := jwt.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return entity.NewSession(claims.Subject, claims.Username, claims.Roles, claims.ExpiresAt), nil
}
