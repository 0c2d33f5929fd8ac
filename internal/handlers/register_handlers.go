package handlers

import (
	"log/slog"

	"github.com/SscSPs/smart_wallet/cmd/docs"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/middleware"
	"github.com/SscSPs/smart_wallet/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const fallbackUnlockRate = "5-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	unlockLimiter, err := middleware.NewMemoryLimiter(cfg.UnlockRateLimit)
	if err != nil {
		slog.Warn("Invalid unlock rate limit, using fallback",
			slog.String("rate", cfg.UnlockRateLimit), slog.String("fallback", fallbackUnlockRate))
		unlockLimiter, _ = middleware.NewMemoryLimiter(fallbackUnlockRate)
	}
	registerAuthRoutes(r, services.Auth, unlockLimiter)

	setupAPIV1Routes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Every route in it needs an unlocked session.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Auth))

	registerLockRoute(v1, services.Auth)
	registerAccountRoutes(v1, services.Wallet, services.Export)
	registerTransactionRoutes(v1, services.Wallet)
	registerReportingRoutes(v1, services.Wallet, services.Session)
	registerGoalRoutes(v1, services.Wallet)
	registerSettingsRoutes(v1, services.Wallet)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
