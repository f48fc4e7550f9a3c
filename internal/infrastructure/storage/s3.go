package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
)

// Asegura que S3Store implementa ports.FileStore.
var _ ports.FileStore = (*S3Store)(nil)

// S3Store guarda archivos en un bucket de S3 bajo el prefijo uploads/.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3Store construye el almacén con la cadena de credenciales por defecto
// del SDK (env vars, perfil, rol de instancia).
func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cargar config AWS: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket, region: region}, nil
}

// Save sube el objeto y devuelve su URL pública.
func (s *S3Store) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", err
	}
	key := "uploads/" + uuid.New().String() + ext
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("subir objeto a S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete elimina el objeto referido por la URL. Devuelve false si la URL no
// apunta a este bucket.
func (s *S3Store) Delete(ctx context.Context, url string) (bool, error) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	key, ok := strings.CutPrefix(url, prefix)
	if !ok || key == "" {
		return false, nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("eliminar objeto de S3: %w", err)
	}
	return true, nil
}
