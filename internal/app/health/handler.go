package health

import (
	"net/http"

	"gamebalance/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Check(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Health check
// @Description Reports "ok" when PostgreSQL and Redis answer, "degraded" otherwise
// @Tags Health
// @Produce json
// @Success 200 {object} utils.HealthStatus
// @Failure 503 {object} utils.HealthStatus
// @Router /health [get]
func (h *handler) Check(c *gin.Context) {
	status := h.service.Check(c.Request.Context())
	if status.Status == utils.StatusOK {
		c.JSON(http.StatusOK, status)
		return
	}
	h.logger.Warnw("Health check degraded", "services", status.Services)
	c.JSON(http.StatusServiceUnavailable, status)
}
