package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/types"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID      = "user_id"
	ContextEmail       = "email"
	ContextDisplayName = "display_name"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
// It returns "" when the header is absent or malformed.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware creates a middleware that validates JWT tokens
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortWithError(c, &service.AuthError{Reason: "missing authorization header"})
			return
		}

		token := BearerToken(c)
		if token == "" {
			abortWithError(c, &service.AuthError{Reason: "invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// SetClaims stores the authenticated identity in the request context.
func SetClaims(c *gin.Context, claims *types.TokenClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextDisplayName, claims.DisplayName)
}

// UserID returns the authenticated user id, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
