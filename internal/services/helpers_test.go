package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/bodavargasprado/wedding-api/internal/database"
	"github.com/bodavargasprado/wedding-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise open its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	putErr    error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = buf.Bytes()
	return "https://cdn.test/object/public/wedding-gallery/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) KeyFromURL(publicURL string) string {
	const marker = "/wedding-gallery/"
	if idx := strings.LastIndex(publicURL, marker); idx >= 0 {
		return publicURL[idx+len(marker):]
	}
	return ""
}

var _ storage.BlobStore = (*fakeBlobStore)(nil)
