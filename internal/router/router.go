package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/profilsaya/backend/config"
	"github.com/pageza/profilsaya/backend/internal/api"
	"github.com/pageza/profilsaya/backend/internal/middleware"
	"github.com/pageza/profilsaya/backend/internal/service"
)

// Dependencies are the collaborators the routes are built from. Redis and
// Avatars are optional.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Auth     service.IAuthService
	Profiles service.IProfileService
	Themes   service.IThemeService
	Avatars  service.IAvatarService
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(deps.Config.CORSOrigins),
		middleware.ErrorHandler(deps.Logger),
	)

	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)

	var authLimiter, saveLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		authLimiter = middleware.NewAuthRateLimiter(deps.Redis, deps.Config.AuthRateLimit, deps.Logger)
		saveLimiter = middleware.NewSaveRateLimiter(deps.Redis, deps.Config.SaveRateLimit, deps.Logger)
	} else {
		deps.Logger.Warn("redis unavailable, rate limiting disabled")
	}

	v1 := router.Group("/api/v1")
	v1.GET("/health", health.HealthCheck)

	api.NewAuthHandler(deps.Auth, deps.Logger).RegisterRoutes(v1, authLimiter)
	api.NewProfileHandler(deps.Profiles, deps.Auth, deps.Themes, deps.Avatars, deps.Config.BaseURL, deps.Logger).
		RegisterRoutes(v1, saveLimiter)
	api.NewThemeHandler(deps.Themes, deps.Auth).RegisterRoutes(v1, saveLimiter)

	return router
}
