package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/urufarma/lims-web/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndDecode_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", []string{"administrador", "supervisor"}, "lims-test", 60)
	require.NoError(t, err)

	d, err := pkgjwt.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "7", d.Subject)
	assert.Equal(t, "admin", d.Username)
	assert.ElementsMatch(t, []string{"administrador", "supervisor"}, d.Roles)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), d.ExpiresAt, 5*time.Second)
}

func TestDecode_NoVerificaFirmaNiExpiracion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "1", "viejo", []string{"operador"}, "lims-test", -10)
	require.NoError(t, err)

	d, err := pkgjwt.Decode(tok)
	require.NoError(t, err, "Decode no debe rechazar tokens vencidos")
	assert.True(t, d.ExpiresAt.Before(time.Now()))
}

func TestDecode_SubNumericoYRolLegado(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub":  42,
		"role": "analista",
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	d, err := pkgjwt.Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "42", d.Subject)
	assert.Equal(t, []string{"analista"}, d.Roles)
	assert.True(t, d.ExpiresAt.IsZero(), "sin exp el vencimiento queda en cero")
}

func TestDecode_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.Decode("esto.no.es-un-jwt")
	assert.Error(t, err)

	_, err = pkgjwt.Decode("")
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "1", "admin", []string{"administrador"}, "lims-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"administrador"}, claims.Roles)
}
