package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler turns the errors handlers attach with c.Error into JSON
// responses and recovers panics into a 500. Only the last error is reported.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic while handling request",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := Classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		} else {
			logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
		}
		c.JSON(status, ErrorResponse{Error: message})
	}
}

// Classify maps an error to its HTTP status and the message safe to send.
func Classify(err error) (int, string) {
	var (
		validation  *service.ValidationError
		auth        *service.AuthError
		persistence *service.PersistenceError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &auth):
		return http.StatusUnauthorized, auth.Reason
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.As(err, &persistence):
		return http.StatusInternalServerError, persistence.PublicMessage()
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// notFoundMessage keeps the text of a wrapped ErrNotFound
// ("Profile not found") and falls back to a generic one.
func notFoundMessage(err error) string {
	if err == service.ErrNotFound {
		return "Not found"
	}
	return err.Error()
}
