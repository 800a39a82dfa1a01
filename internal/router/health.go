package router

import (
	"assetflow/internal/handler"

	"github.com/gin-gonic/gin"
)

type HealthRouter struct {
	healthHandler *handler.HealthHandler
}

func NewHealthRouter(healthHandler *handler.HealthHandler) *HealthRouter {
	return &HealthRouter{healthHandler: healthHandler}
}

// RegisterRoutes 皆不需驗證，也不經 response 封裝
func (healthRouter *HealthRouter) RegisterRoutes(r *gin.Engine) {
	h := healthRouter.healthHandler
	r.GET("/", h.Root)
	r.GET("/version", h.Version)
	r.GET("/health-check", h.Check)

	probes := r.Group("/health")
	probes.GET("/liveness", h.Liveness)
	probes.GET("/readiness", h.Readiness)
}
