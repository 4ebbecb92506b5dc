package stats

import (
	"net/http"

	"gamebalance/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	GetStats(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Play statistics
// @Description Today and this-week totals in minutes with a per-day breakdown
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Stats
// @Failure 401 {object} map[string]string
// @Router /stats [get]
func (h *handler) GetStats(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	st, err := h.service.GetStats(c.Request.Context(), ident.UserID)
	if err != nil {
		if IsUnauthenticated(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		h.logger.Errorw("GetStats: failed", "user_id", ident.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, st)
}
