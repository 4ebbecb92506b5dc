package user

import (
	"errors"
	"net/http"

	"gamebalance/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	UpdateSettings(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Get profile and settings
// @Description Stored profile and settings, or defaults for anything not saved yet
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/profile [get]
func (h *handler) GetProfile(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	ctx := c.Request.Context()

	profile, err := h.service.GetProfile(ctx, ident)
	if err != nil {
		h.respondError(c, "GetProfile", err)
		return
	}
	settings, err := h.service.GetSettings(ctx, ident.UserID)
	if err != nil {
		h.respondError(c, "GetProfile", err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Profile: profile, Settings: settings})
}

// @Summary Update profile
// @Description Merges the supplied fields into the stored profile
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProfileUpdate true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/profile [put]
func (h *handler) UpdateProfile(c *gin.Context) {
	var req ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("UpdateProfile: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile fields"})
		return
	}

	ident := middleware.GetIdentity(c)
	if _, err := h.service.UpdateProfile(c.Request.Context(), ident.UserID, req); err != nil {
		h.respondError(c, "UpdateProfile", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Profile updated"})
}

// @Summary Replace settings
// @Description Stores the complete settings object; every field is required
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SettingsRequest true "Settings"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/settings [put]
func (h *handler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("UpdateSettings: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "all settings fields are required"})
		return
	}

	ident := middleware.GetIdentity(c)
	if err := h.service.UpdateSettings(c.Request.Context(), ident.UserID, req.Settings()); err != nil {
		h.respondError(c, "UpdateSettings", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Settings updated"})
}

func (h *handler) respondError(c *gin.Context, op string, err error) {
	if errors.Is(err, ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	h.logger.Errorw(op+": failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
