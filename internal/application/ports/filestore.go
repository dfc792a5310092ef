package ports

import "context"

// FileStore object store para los documentos subidos. El archivo se conserva
// tras un fallo de extracción para permitir el reintento manual; solo se
// elimina al descartar el borrador.
type FileStore interface {
	Put(ctx context.Context, key string, content []byte, mimeType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
