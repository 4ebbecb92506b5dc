package session

import (
	"errors"
	"net/http"

	"gamebalance/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	StartSession(c *gin.Context)
	EndSession(c *gin.Context)
	ListSessions(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Start a play session
// @Description Records a new active session and makes it the user's current session
// @Tags Session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartSessionRequest true "Selected game"
// @Success 200 {object} StartSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /session/start [post]
func (h *handler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "gameName is required"})
		return
	}

	ident := middleware.GetIdentity(c)
	session, err := h.service.Start(c.Request.Context(), ident.UserID, req)
	if err != nil {
		h.respondError(c, "StartSession", err)
		return
	}

	c.JSON(http.StatusOK, StartSessionResponse{Success: true, SessionID: session.ID})
}

// @Summary End the active play session
// @Description Closes the current session with the elapsed seconds measured by the client
// @Tags Session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EndSessionRequest true "Elapsed seconds"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /session/end [post]
func (h *handler) EndSession(c *gin.Context) {
	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrInvalidDuration.Error()})
		return
	}

	ident := middleware.GetIdentity(c)
	if _, err := h.service.End(c.Request.Context(), ident.UserID, *req.Duration); err != nil {
		h.respondError(c, "EndSession", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Session finished!"})
}

// @Summary List play sessions
// @Description All sessions of the user, most recent first
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionListResponse
// @Failure 401 {object} ErrorResponse
// @Router /sessions [get]
func (h *handler) ListSessions(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	sessions, err := h.service.List(c.Request.Context(), ident.UserID)
	if err != nil {
		h.respondError(c, "ListSessions", err)
		return
	}

	c.JSON(http.StatusOK, SessionListResponse{Sessions: sessions})
}

func (h *handler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, ErrNoActiveSession), errors.Is(err, ErrInvalidDuration):
		h.logger.Warnw(op+": rejected", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Errorw(op+": failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to process session request"})
	}
}
