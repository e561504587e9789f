// Package storage provides blob storage backends for uploaded file content.
// Bytes are stored opaquely by path, independent of relational metadata.
package storage

import (
	"context"
	"fmt"
	"io"
)

// BlobStore is the byte-storage collaborator of the upload and link flows.
// Paths returned by WriteNamed are opaque to callers and are persisted in
// file metadata for later reads and deletes.
type BlobStore interface {
	// Exists reports whether a blob is present under path.
	Exists(ctx context.Context, path string) (bool, error)

	// WriteNamed stores the content of r under the given namespace and
	// desired name and returns the resulting path. Errors match
	// common.ErrStorageWrite.
	WriteNamed(ctx context.Context, namespace, name string, r io.Reader) (string, error)

	// Delete removes the blob under path. Deleting a missing blob is not
	// an error.
	Delete(ctx context.Context, path string) error

	// OpenForRead opens the blob under path for streaming. A missing blob
	// yields an error matching common.ErrNotFound.
	OpenForRead(ctx context.Context, path string) (io.ReadCloser, error)
}

// Type selects the storage backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config holds backend selection and backend-specific settings.
type Config struct {
	Type Type

	// Local backend.
	LocalBasePath string

	// S3 backend.
	S3Bucket       string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string
}

// New builds the blob store selected by cfg.Type.
func New(ctx context.Context, cfg Config) (BlobStore, error) {
	switch cfg.Type {
	case TypeLocal:
		return NewLocal(cfg.LocalBasePath)
	case TypeS3:
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
