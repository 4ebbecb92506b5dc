package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.POST("/auth/signup", handler.Signup)
	rg.POST("/auth/signin", handler.Signin)
}
