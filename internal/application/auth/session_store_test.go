package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urufarma/lims-web/internal/application/auth"
	"github.com/urufarma/lims-web/internal/application/dto"
	"github.com/urufarma/lims-web/internal/domain"
	"github.com/urufarma/lims-web/internal/domain/entity"
	pkgjwt "github.com/urufarma/lims-web/pkg/jwt"
)

const testSecret = "test-secret"

// memStorage TokenStorage en memoria que cuenta las escrituras.
type memStorage struct {
	token   string
	saves   int
	clears  int
	loadErr error
}

func (m *memStorage) Load() (string, error) { return m.token, m.loadErr }
func (m *memStorage) Save(t string) error   { m.token = t; m.saves++; return nil }
func (m *memStorage) Clear() error          { m.token = ""; m.clears++; return nil }

func tokenFor(t *testing.T, roles []string, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", roles, "lims-test", expMinutes)
	require.NoError(t, err)
	return tok
}

func TestLogin_GuardaTokenYDecodificaSesion(t *testing.T) {
	st := &memStorage{}
	store := auth.NewSessionStore(st, nil)
	tok := tokenFor(t, []string{"administrador"}, 60)

	sess, err := store.Login(tok)
	require.NoError(t, err)

	assert.Equal(t, "7", sess.SubjectID)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, tok, st.token)
	assert.Equal(t, tok, store.Token())
	assert.Same(t, sess, store.Current())
	assert.True(t, store.HasRole(entity.RoleAdmin))
}

func TestLogin_TokenInvalidoNoTocaEstado(t *testing.T) {
	st := &memStorage{}
	store := auth.NewSessionStore(st, nil)
	_, err := store.Login(tokenFor(t, []string{"analista"}, 60))
	require.NoError(t, err)
	prev := store.Token()

	_, err = store.Login("no-es-un-jwt")

	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
	assert.Equal(t, prev, store.Token())
	assert.Equal(t, 1, st.saves)
}

func TestRestore_SinToken(t *testing.T) {
	store := auth.NewSessionStore(&memStorage{}, nil)
	assert.Nil(t, store.Restore())
	assert.Nil(t, store.Current())
}

func TestRestore_TokenVigente(t *testing.T) {
	st := &memStorage{token: tokenFor(t, []string{"supervisor"}, 60)}
	store := auth.NewSessionStore(st, nil)

	sess := store.Restore()

	require.NotNil(t, sess)
	assert.Equal(t, []entity.Role{entity.RoleSupervisor}, sess.Roles)
	assert.Equal(t, st.token, store.Token())
}

func TestRestore_TokenVencidoLimpiaStorage(t *testing.T) {
	st := &memStorage{token: tokenFor(t, []string{"supervisor"}, 60)}
	later := func() time.Time { return time.Now().Add(2 * time.Hour) }
	store := auth.NewSessionStore(st, later)

	assert.Nil(t, store.Restore())
	assert.Empty(t, st.token)
	assert.Equal(t, 1, st.clears)
	assert.Empty(t, store.Token())
}

func TestRestore_TokenCorruptoLimpiaStorage(t *testing.T) {
	st := &memStorage{token: "basura"}
	store := auth.NewSessionStore(st, nil)

	assert.Nil(t, store.Restore())
	assert.Empty(t, st.token)
}

func TestLogout_Idempotente(t *testing.T) {
	st := &memStorage{}
	store := auth.NewSessionStore(st, nil)
	_, err := store.Login(tokenFor(t, []string{"operador"}, 60))
	require.NoError(t, err)

	store.Logout()
	store.Logout()

	assert.Nil(t, store.Current())
	assert.Empty(t, store.Token())
	assert.False(t, store.HasRole(entity.RoleOperator))
	assert.Equal(t, 2, st.clears)
}

func TestHasRole_SinSesion(t *testing.T) {
	store := auth.NewSessionStore(&memStorage{}, nil)
	assert.False(t, store.HasRole(entity.RoleAdmin, entity.RoleAnalyst))
}

// fakeAuthService simula POST /auth/login.
type fakeAuthService struct {
	token string
	err   error
	calls int
}

func (f *fakeAuthService) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.LoginResponse{AccessToken: f.token, TokenType: "bearer"}, nil
}

func TestAuthUseCase_Login(t *testing.T) {
	svc := &fakeAuthService{token: tokenFor(t, []string{"administrador"}, 60)}
	uc := auth.NewAuthUseCase(svc)
	store := auth.NewSessionStore(&memStorage{}, nil)

	sess, err := uc.Login(context.Background(), store, dto.LoginRequest{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, "admin", sess.Username)
	assert.NotEmpty(t, store.Token())
}

func TestAuthUseCase_LoginTokenVencido(t *testing.T) {
	svc := &fakeAuthService{token: tokenFor(t, []string{"administrador"}, 60)}
	uc := auth.NewAuthUseCase(svc)
	st := &memStorage{}
	later := func() time.Time { return time.Now().Add(2 * time.Hour) }
	store := auth.NewSessionStore(st, later)

	_, err := uc.Login(context.Background(), store, dto.LoginRequest{Username: "admin", Password: "admin123"})

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Nil(t, store.Current())
	assert.Zero(t, st.saves, "no persiste un token vencido")
}

func TestAuthUseCase_LoginCredencialesVacias(t *testing.T) {
	svc := &fakeAuthService{}
	uc := auth.NewAuthUseCase(svc)

	_, err := uc.Login(context.Background(), auth.NewSessionStore(&memStorage{}, nil), dto.LoginRequest{Username: "  "})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Zero(t, svc.calls, "no debe llamar al backend")
}

func TestAuthUseCase_LoginRechazado(t *testing.T) {
	svc := &fakeAuthService{err: domain.ErrUnauthorized}
	uc := auth.NewAuthUseCase(svc)
	store := auth.NewSessionStore(&memStorage{}, nil)

	_, err := uc.Login(context.Background(), store, dto.LoginRequest{Username: "admin", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, store.Current())
}
