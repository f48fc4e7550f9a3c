package jwt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Cobranza-api/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testCompanyID  = "00000000-0000-0000-0000-000000000002"
	testCompanyKey = "acme"
	testIssuer     = "cobranza-pro-test"
)

func TestJWT_GenerateAndParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testCompanyID, testCompanyKey, "admin", testIssuer, 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, testCompanyKey, claims.CompanyKey)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 hora (ya expirado)
	tok, err := pkgjwt.Generate(testSecret, testUserID, testCompanyID, testCompanyKey, "admin", testIssuer, -1)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
	assert.Nil(t, claims, "nunca se devuelven claims parciales")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testCompanyID, testCompanyKey, "admin", testIssuer, 24)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

// Un bit alterado en el payload invalida la firma completa.
func TestJWT_PayloadAlterado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testCompanyID, testCompanyKey, "user", testIssuer, 24)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	payload := []byte(parts[1])
	if payload[10] == 'A' {
		payload[10] = 'B'
	} else {
		payload[10] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	claims, err := pkgjwt.Parse(testSecret, tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_TokenMalformado_RetornaError(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)

	_, err = pkgjwt.Parse(testSecret, "")
	assert.Error(t, err)
}
