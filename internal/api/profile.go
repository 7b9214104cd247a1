package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/internal/middleware"
	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/slug"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

// ProfileHandler serves the public page and the editor's save path
type ProfileHandler struct {
	profiles service.IProfileService
	resolver *service.ProfileResolver
	auth     service.IAuthService
	themes   service.IThemeService
	avatars  service.IAvatarService
	baseURL  string
	logger   *zap.Logger
}

// NewProfileHandler creates the handler. avatars may be nil when no bucket
// is configured; the upload route then answers 503.
func NewProfileHandler(
	profiles service.IProfileService,
	auth service.IAuthService,
	themes service.IThemeService,
	avatars service.IAvatarService,
	baseURL string,
	logger *zap.Logger,
) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{
		profiles: profiles,
		resolver: service.NewProfileResolver(profiles),
		auth:     auth,
		themes:   themes,
		avatars:  avatars,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

// RegisterRoutes mounts the profile routes. saveLimiter may be nil.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, saveLimiter *middleware.RateLimiter) {
	authRequired := middleware.AuthMiddleware(h.auth)

	save := []gin.HandlerFunc{h.resolveCaller}
	if saveLimiter != nil {
		save = append(save, saveLimiter.RateLimitMiddleware())
	}
	save = append(save, h.Save)

	profile := router.Group("/profile")
	{
		profile.POST("/save", save...)
		profile.POST("/check-availability", h.CheckAvailability)
		profile.POST("/avatar", authRequired, h.UploadAvatar)
		profile.GET("/:id", h.Get)
		profile.DELETE("/:id", authRequired, h.Delete)
	}
	router.GET("/profiles", h.List)
}

// Get returns the public page for a slug or an account id.
func (h *ProfileHandler) Get(c *gin.Context) {
	agg, err := h.resolver.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if agg == nil {
		_ = c.Error(service.NotFound("Profile"))
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Profile:      agg.Profile,
		Links:        agg.Links,
		Theme:        agg.Theme,
		Presentation: theme.Resolve(agg.Theme.Settings),
	})
}

// Delete removes the caller's own page.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if c.Param("id") != userID {
		_ = c.Error(service.ErrForbidden)
		return
	}

	if _, err := h.profiles.DeleteProfile(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.themes.Discard(c.Request.Context(), userID); err != nil {
		h.logger.Warn("dropping theme edits of deleted profile failed", zap.String("user_id", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, DeleteResponse{Success: true, Message: "Profile deleted successfully"})
}

// resolveCaller authenticates a save from the Authorization header or,
// failing that, from the token field of the body.
func (h *ProfileHandler) resolveCaller(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		token = bodyToken(c)
	}

	claims, err := h.auth.ValidateToken(token)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	middleware.SetClaims(c, claims)
	c.Next()
}

// bodyToken peeks at the token field and restores the body for binding.
func bodyToken(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	data, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Token
}

// Save stores the caller's whole page and returns its share URL.
func (h *ProfileHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.auth.GetUserByID(ctx, middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req SaveProfileRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	req.Profile.Name = strings.TrimSpace(req.Profile.Name)
	if req.Profile.Name == "" {
		_ = c.Error(&service.ValidationError{Field: "name", Message: "Name is required"})
		return
	}

	userID := user.ID.String()
	settings, err := h.themeForSave(c, userID, req.Theme())
	if err != nil {
		_ = c.Error(err)
		return
	}

	links := make([]models.Link, len(req.Links))
	for i, l := range req.Links {
		links[i] = models.Link{ClientID: l.ID, Title: strings.TrimSpace(l.Title), URL: l.URL}
	}

	secondaryBg := strings.TrimSpace(req.Profile.SecondaryBg)
	if secondaryBg == "" {
		secondaryBg = models.DefaultSecondaryBg
	}
	profile := models.Profile{
		Name:        req.Profile.Name,
		Bio:         req.Profile.Bio,
		AvatarURL:   req.Profile.AvatarURL,
		Verified:    req.Profile.Verified,
		SecondaryBg: secondaryBg,
	}
	savedID, err := h.profiles.SaveProfile(ctx, userID, profile, links, settings)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// the session snapshot is now persisted
	if err := h.themes.Discard(ctx, userID); err != nil {
		h.logger.Warn("dropping saved theme edits failed", zap.String("user_id", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, SaveProfileResponse{
		UserID:   savedID,
		ShareURL: h.baseURL + "/" + user.Slug,
		Slug:     user.Slug,
		Message:  "Profile saved successfully",
	})
}

// themeForSave merges submitted settings against the defaults, or takes
// the settings of the caller's editing session when none were submitted.
func (h *ProfileHandler) themeForSave(c *gin.Context, userID string, submitted *theme.Partial) (theme.Settings, error) {
	if submitted != nil {
		return theme.Merge(submitted), nil
	}
	sess, err := h.themes.OpenSession(c.Request.Context(), userID)
	if err != nil {
		return theme.Settings{}, err
	}
	defer sess.Close()
	return sess.Settings(), nil
}

// CheckAvailability reports whether the slug derived from name is free:
// no profile is stored under it and no account owns it.
func (h *ProfileHandler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	candidate := slug.Make(req.Name)
	if candidate == "" {
		_ = c.Error(&service.ValidationError{Field: "name", Message: "Name must contain at least one letter or digit"})
		return
	}

	ctx := c.Request.Context()
	available, err := h.profiles.IsUserIDAvailable(ctx, candidate)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if available {
		_, err := h.auth.GetUserBySlug(ctx, candidate)
		switch {
		case err == nil:
			available = false
		case !errors.Is(err, service.ErrNotFound):
			_ = c.Error(err)
			return
		}
	}

	c.JSON(http.StatusOK, AvailabilityResponse{UserID: candidate, Available: available})
}

// List returns the most recently updated pages.
func (h *ProfileHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			_ = c.Error(&service.ValidationError{Field: "limit", Message: "Limit must be a positive number"})
			return
		}
		limit = n
	}

	profiles, err := h.profiles.ListProfiles(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ProfilesResponse{Profiles: profiles})
}

// UploadAvatar stores the multipart "avatar" file and returns its URL.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	if h.avatars == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Avatar uploads are not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxAvatarBytes+1<<20)
	file, err := c.FormFile("avatar")
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: "avatar", Message: "Avatar file is required"})
		return
	}
	if file.Size > service.MaxAvatarBytes {
		_ = c.Error(&service.ValidationError{Field: "avatar", Message: "Avatar must be at most 5 MB"})
		return
	}

	f, err := file.Open()
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: "avatar", Message: "Avatar file could not be read"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxAvatarBytes+1))
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: "avatar", Message: "Avatar file could not be read"})
		return
	}

	url, err := h.avatars.Upload(c.Request.Context(), middleware.UserID(c), data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, AvatarResponse{AvatarURL: url})
}
