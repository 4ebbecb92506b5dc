package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Signup(c *gin.Context)
	Signin(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Create an account
// @Description Registers credentials and initializes the profile with default settings
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "New account"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("Signup: invalid request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email, password (6+ characters), name and username are required"})
		return
	}

	ident, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInvalidEmail),
			errors.Is(err, ErrWeakPassword), errors.Is(err, ErrMissingName):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			h.logger.Errorw("Signup: failed", "error", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to create account"})
		}
		return
	}

	c.JSON(http.StatusOK, SignupResponse{Success: true, User: ident, Message: "Account created"})
}

// @Summary Sign in
// @Description Exchanges email and password for a bearer access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SigninRequest true "Credentials"
// @Success 200 {object} SigninResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrInvalidCredentials.Error()})
		return
	}

	token, ident, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.logger.Errorw("Signin: failed", "error", err)
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: ErrInvalidCredentials.Error()})
		return
	}

	h.logger.Infow("Signin: successful", "user_id", ident.UserID)
	c.JSON(http.StatusOK, SigninResponse{Success: true, AccessToken: token, User: ident})
}
