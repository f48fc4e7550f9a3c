package ports

import "context"

// FileStore es el puerto de almacenamiento de archivos adjuntos (comprobantes
// PDF, logos). Las implementaciones validan el content type contra una lista
// blanca antes de aceptar el archivo; cada caso de uso restringe además el
// tipo concreto que admite (PDF para comprobantes, imagen para logos).
type FileStore interface {
	// Save persiste el archivo y devuelve la URL pública. Un content type
	// fuera de la lista blanca produce domain.ErrValidation.
	Save(ctx context.Context, data []byte, contentType string) (string, error)
	// Delete elimina el archivo por URL. Devuelve false si la URL no
	// corresponde a este almacén o el archivo no existía.
	Delete(ctx context.Context, url string) (bool, error)
}
