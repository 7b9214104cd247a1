package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/slug"
	"github.com/pageza/profilsaya/backend/internal/types"
)

const (
	defaultBcryptCost = 12
	tokenIssuer       = "profilsaya"
	minPasswordLength = 6

	// column widths of users.display_name and users.email
	maxDisplayNameLength = 100
	maxEmailLength       = 255
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService issues and verifies identity credentials.
type AuthService struct {
	db         *gorm.DB
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		db:         db,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: defaultBcryptCost,
		logger:     logger.Named("auth"),
	}
}

// WithBcryptCost overrides the password hashing cost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

// Register creates an account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, displayName, email, password string) (*models.User, string, error) {
	displayName = strings.TrimSpace(displayName)
	email = normalizeEmail(email)

	if displayName == "" || email == "" || password == "" {
		return nil, "", newValidationError("", "Display name, email, and password are required")
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLength {
		return nil, "", newValidationError("display_name", fmt.Sprintf("Display name must be at most %d characters", maxDisplayNameLength))
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return nil, "", newValidationError("email", fmt.Sprintf("Email must be at most %d characters", maxEmailLength))
	}
	if !emailPattern.MatchString(email) {
		return nil, "", newValidationError("email", "Invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, "", newValidationError("password", fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}

	userSlug := slug.Make(displayName)
	if userSlug == "" {
		return nil, "", newValidationError("display_name", "Display name must contain at least one letter or digit")
	}
	if IsIdentifier(userSlug) {
		return nil, "", newValidationError("display_name", "Display name cannot look like an account id")
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", persistenceError("register user", err)
	}
	if count > 0 {
		return nil, "", newValidationError("email", "Email already registered")
	}
	if err := db.Model(&models.User{}).Where("slug = ?", userSlug).Count(&count).Error; err != nil {
		return nil, "", persistenceError("register user", err)
	}
	if count > 0 {
		return nil, "", newValidationError("display_name", "Display name already taken. Please choose a different name.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: string(hash),
		Slug:         userSlug,
	}
	if err := db.Create(user).Error; err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", newValidationError("", "Email or display name already registered")
		}
		return nil, "", persistenceError("register user", err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("slug", user.Slug))
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", newValidationError("", "Email and password are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", &AuthError{Reason: "Invalid email or password"}
	}
	if err != nil {
		return nil, "", persistenceError("log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", &AuthError{Reason: "Invalid email or password"}
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GenerateToken signs a token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:      user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies tokenString and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if tokenString == "" {
		return nil, &AuthError{Reason: "missing token"}
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &AuthError{Reason: "token has expired", Err: err}
		}
		return nil, &AuthError{Reason: "invalid token", Err: err}
	}
	if !token.Valid || claims.UserID == "" {
		return nil, &AuthError{Reason: "invalid token"}
	}
	return claims, nil
}

// GetUserByID returns ErrNotFound when no user has id.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, NotFound("User")
	}
	return s.findUser(ctx, "id = ?", uid.String())
}

// GetUserBySlug returns ErrNotFound when no user has slug.
func (s *AuthService) GetUserBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.findUser(ctx, "slug = ?", slug)
}

func (s *AuthService) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("User")
	}
	if err != nil {
		return nil, persistenceError("load user", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
