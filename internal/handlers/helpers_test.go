package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/auth"
	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/bodavargasprado/wedding-api/internal/database"
	"github.com/bodavargasprado/wedding-api/internal/repository"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminSecret = "s3cret-admin"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	blobs       *memoryBlobStore
	invitations *services.InvitationService
	gallery     *services.GalleryService
	authService *services.AuthService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(database.Models()...))

	blobs := &memoryBlobStore{objects: make(map[string][]byte)}
	invitationService := services.NewInvitationService(repository.NewInvitationRepository(db), services.InvitationOptions{
		GuestCapacity: 120,
	}, nil)
	galleryService := services.NewGalleryService(repository.NewGalleryRepository(db), blobs, 1024, nil)
	authService, err := services.NewAuthService(testAdminSecret, "", auth.NewJWTManager("test-jwt", time.Hour), auth.NewMemoryRevoker(), nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, Router{
		Invitations:   NewInvitationHandler(invitationService),
		Gallery:       NewGalleryHandler(galleryService),
		Auth:          NewAuthHandler(authService),
		Authenticator: authService,
		Cleanup:       galleryService,
		WeddingDate:   time.Date(2025, time.November, 22, 16, 0, 0, 0, time.UTC),
		GuestCapacity: 120,
	})

	return testEnv{
		db:          db,
		router:      r,
		blobs:       blobs,
		invitations: invitationService,
		gallery:     galleryService,
		authService: authService,
	}
}

func (env testEnv) adminToken(t *testing.T) string {
	t.Helper()
	session, err := env.authService.Login(context.Background(), testAdminSecret)
	require.NoError(t, err)
	return session.Token
}

// do sends body as JSON unless it is already an io.Reader.
func (env testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decode(t, w, &body)
	return body.Code
}

type memoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (m *memoryBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return "https://cdn.test/object/public/wedding-gallery/" + key, nil
}

func (m *memoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryBlobStore) KeyFromURL(publicURL string) string {
	const marker = "/wedding-gallery/"
	if idx := strings.LastIndex(publicURL, marker); idx >= 0 {
		return publicURL[idx+len(marker):]
	}
	return ""
}

func (m *memoryBlobStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}
