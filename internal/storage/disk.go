package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DiskStorage writes blobs below BasePath. Used for local development and tests.
type DiskStorage struct {
	BasePath  string
	bucket    string
	publicURL string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath, bucket, publicURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	if publicURL == "" {
		publicURL = "/uploads/" + bucket
	}
	return &DiskStorage{
		BasePath:  basePath,
		bucket:    bucket,
		publicURL: publicURL,
		dirs:      make(map[string]bool, 10),
	}, nil
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

// fullPath rejects keys that would escape BasePath.
func (s *DiskStorage) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.BasePath, clean), nil
}

func (s *DiskStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileName, err := s.fullPath(key)
	if err != nil {
		return "", err
	}
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_, err = io.Copy(file, r)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fileName)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return joinURL(s.publicURL, key), nil
}

func (s *DiskStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fileName, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fileName); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *DiskStorage) KeyFromURL(publicURL string) string {
	return keyAfterMarker(publicURL, s.bucket)
}
