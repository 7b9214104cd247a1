package api

import (
	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

type RegisterRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

// LinkRequest is one submitted link. ID is the editor's own identifier.
type LinkRequest struct {
	ID    string `json:"id" binding:"omitempty,max=64"`
	Title string `json:"title" binding:"required,max=255"`
	URL   string `json:"url" binding:"required,http_url,max=2048"`
}

// ProfileRequest is the profile part of a saved page
type ProfileRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Bio         string `json:"bio" binding:"max=1000"`
	AvatarURL   string `json:"avatar_url" binding:"omitempty,http_url,max=1024"`
	Verified    bool   `json:"verified"`
	SecondaryBg string `json:"secondary_bg" binding:"max=64"`
}

// SaveProfileRequest is the full page as submitted by the editor. Token is
// read when no Authorization header is sent. Theme settings are accepted
// under theme_settings or themeSettings; when both are missing the theme of
// the caller's editing session is saved.
type SaveProfileRequest struct {
	Token         string         `json:"token"`
	Profile       ProfileRequest `json:"profile"`
	Links         []LinkRequest  `json:"links" binding:"dive"`
	ThemeSettings *theme.Partial `json:"theme_settings,omitempty"`
	ThemeCamel    *theme.Partial `json:"themeSettings,omitempty"`
}

// Theme returns the submitted theme settings, or nil.
func (r *SaveProfileRequest) Theme() *theme.Partial {
	if r.ThemeSettings != nil {
		return r.ThemeSettings
	}
	return r.ThemeCamel
}

type SaveProfileResponse struct {
	UserID   string `json:"user_id"`
	ShareURL string `json:"share_url"`
	Slug     string `json:"slug"`
	Message  string `json:"message"`
}

// ProfileResponse is the public page: the stored aggregate plus the
// presentation derived from its theme.
type ProfileResponse struct {
	Profile      models.Profile     `json:"profile"`
	Links        []models.Link      `json:"links"`
	Theme        models.Theme       `json:"theme"`
	Presentation theme.Presentation `json:"presentation"`
}

type AvailabilityRequest struct {
	Name string `json:"name" binding:"required"`
}

type AvailabilityResponse struct {
	UserID    string `json:"user_id"`
	Available bool   `json:"available"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProfilesResponse struct {
	Profiles []models.Profile `json:"profiles"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

// ThemeResponse is the state of an editing session
type ThemeResponse struct {
	Settings     theme.Settings     `json:"settings"`
	Presentation theme.Presentation `json:"presentation"`
}
