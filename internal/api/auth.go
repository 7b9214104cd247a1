package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/internal/middleware"
	"github.com/pageza/profilsaya/backend/internal/service"
)

// AuthHandler serves the identity routes
type AuthHandler struct {
	authService service.IAuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes mounts /auth. limiter may be nil.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	auth := router.Group("/auth")
	if limiter != nil {
		auth.Use(limiter.RateLimitMiddleware())
	}
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/verify", h.Verify)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.DisplayName, req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// Verify checks a token and returns the user it belongs to.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	claims, err := h.authService.ValidateToken(req.Token)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{User: user})
}
