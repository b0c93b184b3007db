package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marmotkit/asset-mgmt-accounting/cmd/docs"
	portssvc "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/metrics"
	"github.com/marmotkit/asset-mgmt-accounting/internal/utils"
)

// Extras carries the optional collaborators of the HTTP layer. Nil fields disable the
// corresponding feature.
type Extras struct {
	Metrics  *metrics.Metrics
	Posthog  *utils.PosthogClientWrapper
	Enqueuer SyncEnqueuer
	// HealthChecks are probed by /health, keyed by dependency name.
	HealthChecks map[string]HealthCheck
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	extras Extras,
) {
	r.GET("/health", newHealthHandler(extras.HealthChecks))
	if extras.Metrics != nil {
		r.GET("/metrics", gin.WrapH(extras.Metrics.Handler()))
	}

	registerAuthRoutes(r, services.Auth)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(extras.Posthog))
	RegisterAccountingRoutes(v1, services, extras)

	setupSwaggerRoutes(r, cfg)
}

// RegisterAccountingRoutes mounts every /accounting route on an already authenticated group.
func RegisterAccountingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, extras Extras) {
	RegisterValidators()

	accounting := rg.Group("/accounting")
	registerLookupRoutes(accounting, services.Lookup)
	registerJournalRoutes(accounting, services.Journal)
	registerReceivableRoutes(accounting, services.Receivable)
	registerPayableRoutes(accounting, services.Payable)
	registerMonthlyClosingRoutes(accounting, services.MonthlyClosing, services.Sync, extras.Posthog)
	registerSyncRoutes(accounting, services.Sync, extras.Enqueuer, extras.Posthog)
	registerReportingRoutes(accounting, services.Reporting)
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
