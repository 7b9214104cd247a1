package service

import (
	"context"

	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/theme"
	"github.com/pageza/profilsaya/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, displayName, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserBySlug(ctx context.Context, slug string) (*models.User, error)
}

// IProfileService defines the interface for page aggregate persistence
type IProfileService interface {
	ProfileReader
	SaveProfile(ctx context.Context, userID string, profile models.Profile, links []models.Link, settings theme.Settings) (string, error)
	DeleteProfile(ctx context.Context, userID string) (bool, error)
	IsUserIDAvailable(ctx context.Context, candidate string) (bool, error)
	ListProfiles(ctx context.Context, limit int) ([]models.Profile, error)
}

// IThemeService defines the interface for theme editing sessions
type IThemeService interface {
	OpenSession(ctx context.Context, userID string) (*theme.Session, error)
	Discard(ctx context.Context, userID string) error
}

// IAvatarService defines the interface for avatar storage
type IAvatarService interface {
	Upload(ctx context.Context, userID string, data []byte) (string, error)
}

var (
	_ IAuthService    = (*AuthService)(nil)
	_ IProfileService = (*ProfileService)(nil)
	_ IThemeService   = (*ThemeService)(nil)
	_ IAvatarService  = (*AvatarService)(nil)
)
