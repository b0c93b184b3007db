package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marmotkit/asset-mgmt-accounting/internal/middleware"
)

const healthProbeTimeout = 2 * time.Second

// HealthCheck probes one backing dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// newHealthHandler godoc
// @Summary Report service and dependency health
// @Tags root
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func newHealthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		resp := healthResponse{Status: "ok"}
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Health probe failed",
					slog.String("dependency", name), slog.String("error", err.Error()))
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "ok"
		}

		code := http.StatusOK
		if resp.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}
