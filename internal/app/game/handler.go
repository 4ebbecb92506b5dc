package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	GetAllGames(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Get the game catalog
// @Description Games that can be selected for a play session
// @Tags Game
// @Produce json
// @Success 200 {object} GameListResponse
// @Failure 500 {object} ErrorResponse
// @Router /games [get]
func (h *handler) GetAllGames(c *gin.Context) {
	games, err := h.service.GetAllGames()
	if err != nil {
		h.logger.Errorw("GetAllGames: failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch games"})
		return
	}
	c.JSON(http.StatusOK, GameListResponse{Games: games})
}
