package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
)

// Asegura que LocalStore implementa ports.FileStore.
var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore guarda archivos en disco y los sirve bajo un prefijo público.
// Adecuado para desarrollo y despliegues de una sola instancia.
type LocalStore struct {
	dir       string
	publicURL string // prefijo bajo el que el router sirve dir, ej. /uploads
}

// NewLocalStore crea el directorio de subida si no existe.
func NewLocalStore(dir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de subida: %w", err)
	}
	return &LocalStore{dir: dir, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

// Save escribe el archivo con nombre aleatorio y devuelve su URL pública.
func (s *LocalStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("guardar archivo: %w", err)
	}
	return s.publicURL + "/" + name, nil
}

// Delete elimina el archivo referido por la URL. Devuelve false si la URL no
// pertenece a este almacén o el archivo ya no existía.
func (s *LocalStore) Delete(ctx context.Context, url string) (bool, error) {
	name, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok || name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return false, nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("eliminar archivo: %w", err)
	}
	return true, nil
}
