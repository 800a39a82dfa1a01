package handler

import (
	"net/http"

	"assetflow/config"
	"assetflow/internal/pkg/response"
	"assetflow/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthStatus *service.HealthService
	config       *config.Configuration
}

func NewHealthHandler(status *service.HealthService, config *config.Configuration) *HealthHandler {
	return &HealthHandler{healthStatus: status, config: config}
}

// Root 存活字串
// @Summary 服務存活確認
// @Tags Health
// @Produce plain
// @Success 200 {string} string "Project is running..."
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Project is running...")
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthStatus.IsLive() {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.healthStatus.IsReady() {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	c.Status(http.StatusServiceUnavailable)
}

// Version 服務版本
// @Summary 服務版本
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /version [get]
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":          h.config.App.Name,
		"version":       h.config.App.Version,
		"env":           h.config.App.Env,
		"uptimeSeconds": h.healthStatus.Uptime(),
	})
}

// Check 舊版 LB 探測用，固定回 ok
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, response.Response{
		Code:        0,
		Data:        "ok",
		Message:     "success",
		Description: "service is alive",
	})
}
