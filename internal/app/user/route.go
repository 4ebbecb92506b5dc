package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/user/profile", handler.GetProfile)
	rg.PUT("/user/profile", handler.UpdateProfile)
	rg.PUT("/user/settings", handler.UpdateSettings)
}
