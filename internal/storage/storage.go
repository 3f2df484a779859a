package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bodavargasprado/wedding-api/internal/config"
)

// ErrUnavailable wraps any failure talking to the underlying object store.
var ErrUnavailable = errors.New("blob store unavailable")

// BlobStore keeps the binary side of gallery media. The database only holds
// the key and the public URL returned by Put.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL derives the object key from a public URL produced by Put.
	KeyFromURL(publicURL string) string
}

// New builds the blob store selected by STORAGE_DRIVER.
func New(cfg *config.Config) (BlobStore, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Storage(S3Options{
			Bucket:    cfg.StorageBucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.StoragePublicURL,
		})
	case "disk":
		return NewDiskStorage(cfg.StorageDir, cfg.StorageBucket, cfg.StoragePublicURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// keyAfterMarker returns whatever follows "/{bucket}/" in url, or "" when the
// marker is absent.
func keyAfterMarker(url, bucket string) string {
	marker := "/" + bucket + "/"
	idx := strings.LastIndex(url, marker)
	if idx < 0 {
		return ""
	}
	key := url[idx+len(marker):]
	if q := strings.IndexAny(key, "?#"); q >= 0 {
		key = key[:q]
	}
	return key
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
