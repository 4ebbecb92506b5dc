package session

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/session/start", handler.StartSession)
	rg.POST("/session/end", handler.EndSession)
	rg.GET("/sessions", handler.ListSessions)
}
