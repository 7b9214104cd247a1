package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/testhelpers"
)

func TestRegister(t *testing.T) {
	auth := testhelpers.NewAuthService(testhelpers.SetupTestDatabase(t))
	ctx := context.Background()

	user, token, err := auth.Register(ctx, "  Zoë Martín ", " Zoe@Example.COM", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Zoë Martín", user.DisplayName)
	assert.Equal(t, "zoe@example.com", user.Email)
	assert.Equal(t, "zoe-martin", user.Slug)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "zoe@example.com", claims.Email)
	assert.Equal(t, "Zoë Martín", claims.DisplayName)
}

func TestRegisterRejects(t *testing.T) {
	auth := testhelpers.NewAuthService(testhelpers.SetupTestDatabase(t))
	testhelpers.CreateTestUser(t, auth, "Jane Doe", "jane@example.com")

	tests := []struct {
		name        string
		displayName string
		email       string
		password    string
		message     string
	}{
		{"empty name", "", "a@b.co", "password123", "Display name, email, and password are required"},
		{"empty password", "A", "a@b.co", "", "Display name, email, and password are required"},
		{"name too long", strings.Repeat("é", 101), "a@b.co", "password123", "Display name must be at most 100 characters"},
		{"email too long", "A", strings.Repeat("a", 250) + "@b.co", "password123", "Email must be at most 255 characters"},
		{"bad email", "A", "not-an-email", "password123", "Invalid email format"},
		{"short password", "A", "a@b.co", "12345", "Password must be at least 6 characters long"},
		{"no usable characters", "!!!", "a@b.co", "password123", "Display name must contain at least one letter or digit"},
		{"looks like an id", "6f1c2d4e 8a9b 4c3d 9e8f 7a6b5c4d3e2f", "a@b.co", "password123", "Display name cannot look like an account id"},
		{"email taken", "Someone", "JANE@example.com", "password123", "Email already registered"},
		{"slug taken", "JANE  DOE", "other@example.com", "password123", "Display name already taken. Please choose a different name."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Register(context.Background(), tt.displayName, tt.email, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)

			var verr *service.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestRegisterAcceptsLongestName(t *testing.T) {
	auth := testhelpers.NewAuthService(testhelpers.SetupTestDatabase(t))

	name := strings.Repeat("é", 100)
	user, _, err := auth.Register(context.Background(), name, "long@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, name, user.DisplayName)
	assert.Equal(t, strings.Repeat("e", 100), user.Slug)
}

func TestLogin(t *testing.T) {
	auth := testhelpers.NewAuthService(testhelpers.SetupTestDatabase(t))
	registered, _ := testhelpers.CreateTestUser(t, auth, "Jane Doe", "jane@example.com")
	ctx := context.Background()

	user, token, err := auth.Login(ctx, "  JANE@example.com", testhelpers.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = auth.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, _, err = auth.Login(ctx, "nobody@example.com", testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, _, err = auth.Login(ctx, "", "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := testhelpers.NewAuthService(db)
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", DisplayName: "Jane"}

	valid, err := auth.GenerateToken(user)
	require.NoError(t, err)

	expired, err := service.NewAuthService(db, testhelpers.TestJWTSecret, -time.Minute, nil).GenerateToken(user)
	require.NoError(t, err)

	foreign, err := service.NewAuthService(db, "another-secret", time.Hour, nil).GenerateToken(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		reason string
	}{
		{"empty", "", "missing token"},
		{"garbage", "not.a.jwt", "invalid token"},
		{"expired", expired, "token has expired"},
		{"wrong secret", foreign, "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := auth.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, service.ErrUnauthorized)

			var aerr *service.AuthError
			require.True(t, errors.As(err, &aerr))
			assert.Equal(t, tt.reason, aerr.Reason)
		})
	}

	claims, err := auth.ValidateToken(valid)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestGetUser(t *testing.T) {
	auth := testhelpers.NewAuthService(testhelpers.SetupTestDatabase(t))
	registered, _ := testhelpers.CreateTestUser(t, auth, "Jane Doe", "jane@example.com")
	ctx := context.Background()

	user, err := auth.GetUserByID(ctx, registered.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", user.Slug)

	user, err = auth.GetUserBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	for _, lookup := range []func() (*models.User, error){
		func() (*models.User, error) { return auth.GetUserByID(ctx, "not-a-uuid") },
		func() (*models.User, error) { return auth.GetUserByID(ctx, uuid.NewString()) },
		func() (*models.User, error) { return auth.GetUserBySlug(ctx, "nobody") },
	} {
		user, err := lookup()
		assert.Nil(t, user)
		assert.ErrorIs(t, err, service.ErrNotFound)
		assert.EqualError(t, err, "User not found")
	}
}
