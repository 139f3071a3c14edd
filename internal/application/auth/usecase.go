package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/application/ports"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/domain/entity"
)

// MsgLoginFailed mensaje que se muestra cuando el backend rechaza el login sin detalle.
const MsgLoginFailed = "Error de autenticación. Verifique sus credenciales."

// AuthUseCase casos de uso de autenticación del cliente: login contra el backend y logout.
type AuthUseCase struct {
	svc ports.AuthService
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(svc ports.AuthService) *AuthUseCase {
	return &AuthUseCase{svc: svc}
}

// Login envía credenciales al backend y, con el token recibido, inicia la sesión en store.
// Un token que no se puede decodificar o ya vencido se reporta como domain.ErrInvalidToken
// y no deja sesión.
func (uc *AuthUseCase) Login(ctx context.Context, store *SessionStore, in dto.LoginRequest) (*entity.Session, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrValidation)
	}
	resp, err := uc.svc.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, domain.ErrInvalidToken
	}
	// Un token ya vencido no abre sesión: el siguiente request rebotaría a /login sin aviso.
	if sess, err := decodeSession(resp.AccessToken); err == nil && sess.Expired(store.now()) {
		return nil, fmt.Errorf("%w: token vencido", domain.ErrInvalidToken)
	}
	return store.Login(resp.AccessToken)
}

// Logout cierra la sesión local. El backend no mantiene sesión que invalidar.
func (uc *AuthUseCase) Logout(store *SessionStore) {
	store.Logout()
}
