package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/pageza/profilsaya/backend/internal/middleware"
	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// snapshotStore keeps theme snapshots in memory
type snapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *snapshotStore) LoadSnapshot(_ context.Context, userID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[userID], nil
}

func (s *snapshotStore) SaveSnapshot(_ context.Context, userID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = append([]byte(nil), data...)
	return nil
}

func (s *snapshotStore) DeleteSnapshot(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}

func (s *snapshotStore) has(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[userID]
	return ok
}

// testEnv is the API backed by real services on an in-memory database
type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	auth      *service.AuthService
	profiles  *service.ProfileService
	snapshots *snapshotStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)
	db := testhelpers.SetupTestDatabase(t)

	env := &testEnv{
		db:        db,
		auth:      testhelpers.NewAuthService(db),
		profiles:  service.NewProfileService(db, logger),
		snapshots: &snapshotStore{data: map[string][]byte{}},
	}
	themes := service.NewThemeService(env.snapshots, env.profiles, logger)

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	v1 := router.Group("/api/v1")
	NewAuthHandler(env.auth, logger).RegisterRoutes(v1, nil)
	NewProfileHandler(env.profiles, env.auth, themes, nil, "https://profilsaya.test/", logger).RegisterRoutes(v1, nil)
	NewThemeHandler(themes, env.auth).RegisterRoutes(v1, nil)
	env.router = router
	return env
}

// do sends a JSON request and returns the recorder
func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[middleware.ErrorResponse](t, w).Error
}
