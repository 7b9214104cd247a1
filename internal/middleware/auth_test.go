package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/types"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func authRouter(t *testing.T, v TokenValidator) *gin.Engine {
	router := gin.New()
	router.Use(ErrorHandler(zaptest.NewLogger(t)))
	router.GET("/me", AuthMiddleware(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      UserID(c),
			"email":        c.GetString(ContextEmail),
			"display_name": c.GetString(ContextDisplayName),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	v := new(mockValidator)
	v.On("ValidateToken", "good").Return(&types.TokenClaims{
		UserID:      "3f1c2a4e-8a8e-4f5e-9a55-0d2f7c1b9e11",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
	}, nil)
	v.On("ValidateToken", "stale").Return(nil, &service.AuthError{Reason: "token has expired"})

	router := authRouter(t, v)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK,
			`{"user_id":"3f1c2a4e-8a8e-4f5e-9a55-0d2f7c1b9e11","email":"jane@example.com","display_name":"Jane Doe"}`},
		{"lowercase scheme", "bearer good", http.StatusOK,
			`{"user_id":"3f1c2a4e-8a8e-4f5e-9a55-0d2f7c1b9e11","email":"jane@example.com","display_name":"Jane Doe"}`},
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing authorization header"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"error":"invalid authorization header format"}`},
		{"expired", "Bearer stale", http.StatusUnauthorized, `{"error":"token has expired"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
	v.AssertExpectations(t)
}
