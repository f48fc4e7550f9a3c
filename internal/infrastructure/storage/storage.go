package storage

import (
	"fmt"

	"github.com/jhoicas/Cobranza-api/internal/domain"
)

// extensions lista blanca de content types admitidos y su extensión de archivo.
var extensions = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
}

// extensionFor devuelve la extensión para el content type, o
// domain.ErrValidation si está fuera de la lista blanca.
func extensionFor(contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("content type %q no admitido: %w", contentType, domain.ErrValidation)
	}
	return ext, nil
}
