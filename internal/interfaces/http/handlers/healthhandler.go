package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techflow/techflow/internal/shared/biztime"
	"github.com/techflow/techflow/internal/shared/constants"
	"github.com/techflow/techflow/internal/shared/utils"
	"github.com/techflow/techflow/internal/shared/version"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck handles GET /health
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "ok",
		"service": constants.AppName,
		"time":    biztime.Timestamp(biztime.Now()),
	})
}

// Version handles GET /version
// @Summary Build information
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /version [get]
func (h *HealthHandler) Version(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"version":    version.Version,
		"commit":     version.Commit,
		"build_time": version.BuildTime,
	})
}
