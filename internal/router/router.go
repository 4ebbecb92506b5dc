package router

import (
	"gamebalance/internal/app/auth"
	"gamebalance/internal/app/game"
	"gamebalance/internal/app/health"
	"gamebalance/internal/app/session"
	"gamebalance/internal/app/stats"
	"gamebalance/internal/app/user"
	"gamebalance/internal/middleware"

	_ "gamebalance/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
	auth   gin.HandlerFunc
}

// NewRouter builds the engine. Routes registered through the protected
// Register* methods require a bearer token accepted by validator.
func NewRouter(logger *zap.Logger, frontendURL string, validator middleware.TokenValidator) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware(frontendURL))
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())
	return &Router{
		Engine: engine,
		auth:   middleware.RequireAuth(validator, logger),
	}
}

func (r *Router) protected() *gin.RouterGroup {
	group := r.Engine.Group("")
	group.Use(r.auth)
	return group
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine, handler)
}

func (r *Router) RegisterAuthRoutes(handler auth.Handler) {
	auth.RegisterRoutes(r.Engine, handler)
}

func (r *Router) RegisterGameRoutes(handler game.Handler) {
	game.RegisterRoutes(r.Engine, handler)
}

func (r *Router) RegisterUserRoutes(handler user.Handler) {
	user.RegisterRoutes(r.protected(), handler)
}

func (r *Router) RegisterSessionRoutes(handler session.Handler) {
	session.RegisterRoutes(r.protected(), handler)
}

func (r *Router) RegisterStatsRoutes(handler stats.Handler) {
	stats.RegisterRoutes(r.protected(), handler)
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
