// Package storage provides object storage backends for the raw input and
// the flat-file output of the pipeline.
package storage

import (
	"context"
	"fmt"
	"io"
)

// ObjectStore is the minimal object storage surface the pipeline needs:
// read one object, write one object.
type ObjectStore interface {
	// Get opens the object at key for reading. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Put writes size bytes from r to the object at key, replacing any
	// existing object.
	Put(ctx context.Context, key string, r io.Reader, size int64) error
}

// Type selects an object storage backend.
type Type string

const (
	TypeMinio Type = "minio"
	TypeLocal Type = "local"
)

// Config holds object storage connection settings.
type Config struct {
	Type      Type
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// LocalDir is the root directory for the local backend.
	LocalDir string
}

// New creates an object store for the configured backend.
func New(cfg Config) (ObjectStore, error) {
	switch cfg.Type {
	case TypeMinio:
		return NewMinioStore(cfg)
	case TypeLocal:
		return NewLocalStore(cfg.LocalDir), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
