package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/profilsaya/backend/internal/middleware"
	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

// ThemeHandler exposes the caller's theme editing session. Every request
// opens a session, applies its edit and closes it; the snapshot cache keeps
// the edits until the page is saved.
type ThemeHandler struct {
	themes service.IThemeService
	auth   middleware.TokenValidator
}

func NewThemeHandler(themes service.IThemeService, auth middleware.TokenValidator) *ThemeHandler {
	return &ThemeHandler{themes: themes, auth: auth}
}

// RegisterRoutes mounts /theme. editLimiter may be nil.
func (h *ThemeHandler) RegisterRoutes(router *gin.RouterGroup, editLimiter *middleware.RateLimiter) {
	router.GET("/theme/options", h.Options)

	group := router.Group("/theme")
	group.Use(middleware.AuthMiddleware(h.auth))
	if editLimiter != nil {
		group.Use(editLimiter.RateLimitMiddleware())
	}
	group.GET("", h.Get)
	group.PATCH("", h.Update)
	group.POST("/reset", h.Reset)
	group.DELETE("", h.Discard)
}

// Options lists the tokens the editor offers.
func (h *ThemeHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, theme.AvailableOptions())
}

func (h *ThemeHandler) Get(c *gin.Context) {
	h.withSession(c, nil)
}

// Update applies a partial record of edits. Out of range numbers are
// clamped, empty tokens reset their field.
func (h *ThemeHandler) Update(c *gin.Context) {
	var edits theme.Partial
	if err := bindJSON(c, &edits); err != nil {
		_ = c.Error(err)
		return
	}
	h.withSession(c, func(ctx context.Context, sess *theme.Session) error {
		return sess.Apply(ctx, &edits)
	})
}

func (h *ThemeHandler) Reset(c *gin.Context) {
	h.withSession(c, func(ctx context.Context, sess *theme.Session) error {
		return sess.ResetToDefaults(ctx)
	})
}

// Discard drops unsaved edits; the next session starts from the saved theme.
func (h *ThemeHandler) Discard(c *gin.Context) {
	if err := h.themes.Discard(c.Request.Context(), middleware.UserID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ThemeHandler) withSession(c *gin.Context, edit func(context.Context, *theme.Session) error) {
	ctx := c.Request.Context()
	sess, err := h.themes.OpenSession(ctx, middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer sess.Close()

	if edit != nil {
		if err := edit(ctx, sess); err != nil {
			_ = c.Error(&service.PersistenceError{Op: "cache theme edits", Err: err})
			return
		}
	}

	c.JSON(http.StatusOK, ThemeResponse{
		Settings:     sess.Settings(),
		Presentation: sess.Presentation(),
	})
}
