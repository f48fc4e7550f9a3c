// Package password envuelve bcrypt con el contrato que el resto del sistema
// necesita: hash con salt aleatorio y verificación que falla cerrada.
package password

import "golang.org/x/crypto/bcrypt"

// MaxInputBytes largo máximo de entrada que bcrypt considera. Toda contraseña
// se trunca determinísticamente a este largo ANTES de hashear o verificar, de
// modo que hash y verify siempre vean los mismos bytes.
const MaxInputBytes = 72

func truncate(secret string) []byte {
	b := []byte(secret)
	if len(b) > MaxInputBytes {
		b = b[:MaxInputBytes]
	}
	return b
}

// Hash genera un digest bcrypt con salt aleatorio: dos llamadas con la misma
// entrada producen digests distintos, pero Verify acepta ambos.
func Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(truncate(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compara secret contra un digest. Falla cerrada: un digest malformado
// o vacío devuelve false, nunca panic ni error.
func Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(secret)) == nil
}
