package testhelpers

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/service"
)

const (
	TestJWTSecret = "test-jwt-secret"
	TestPassword  = "testpassword123"
)

// NewAuthService returns an AuthService with a cheap hashing cost.
func NewAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(db, TestJWTSecret, time.Hour, nil).WithBcryptCost(bcrypt.MinCost)
}

// CreateTestUser registers displayName with TestPassword and returns the
// user and a valid token.
func CreateTestUser(t *testing.T, auth *service.AuthService, displayName, email string) (*models.User, string) {
	t.Helper()
	user, token, err := auth.Register(context.Background(), displayName, email, TestPassword)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user, token
}
