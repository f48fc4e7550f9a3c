package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/pkg/password"
)

func TestHash_SaltAleatorio(t *testing.T) {
	d1, err := password.Hash("secreta123")
	require.NoError(t, err)
	d2, err := password.Hash("secreta123")
	require.NoError(t, err)

	// Dos hashes de la misma entrada difieren (salt), pero ambos verifican.
	assert.NotEqual(t, d1, d2)
	assert.True(t, password.Verify("secreta123", d1))
	assert.True(t, password.Verify("secreta123", d2))
}

func TestVerify_PasswordIncorrecta(t *testing.T) {
	d, err := password.Hash("secreta123")
	require.NoError(t, err)

	assert.False(t, password.Verify("otra-cosa", d))
	assert.False(t, password.Verify("", d))
}

// Verify falla cerrada ante digests corruptos: false, nunca panic.
func TestVerify_DigestMalformado(t *testing.T) {
	assert.False(t, password.Verify("secreta123", ""))
	assert.False(t, password.Verify("secreta123", "no-es-un-hash-bcrypt"))
	assert.False(t, password.Verify("secreta123", "$2a$corrupto"))
}

// bcrypt solo considera 72 bytes; el truncado determinístico garantiza que
// entradas que comparten los primeros 72 bytes verifican contra el mismo hash.
func TestHash_TruncadoDeterministicoA72Bytes(t *testing.T) {
	base := strings.Repeat("x", password.MaxInputBytes)
	larga := base + "sufijo-ignorado"

	d, err := password.Hash(larga)
	require.NoError(t, err)

	assert.True(t, password.Verify(larga, d))
	assert.True(t, password.Verify(base, d), "los bytes después del 72 no participan del hash")
	assert.False(t, password.Verify(base[:71], d))
}
