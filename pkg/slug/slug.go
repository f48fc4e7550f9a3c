// Package slug normaliza nombres libres a slugs URL-safe (company_key).
// "Açaí & Cía" -> "acai-cia".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD) y elimina las marcas combinantes (tildes, diéresis).
var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize convierte s en un slug: minúsculas, sin tildes, y cualquier
// secuencia no alfanumérica colapsada a un único guion. Devuelve "" si no
// queda ningún carácter útil.
func Normalize(s string) string {
	clean, _, err := transform.String(removeDiacritics, s)
	if err != nil {
		clean = s
	}
	clean = strings.ToLower(clean)

	var b strings.Builder
	b.Grow(len(clean))
	pendingDash := false
	for _, r := range clean {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}
