package router

import (
	"quick_chat_server/internal/handler"
	"quick_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册账号相关路由
func RegisterUserRoutes(r *gin.Engine, h *handler.Handlers) {
	// 公开接口 (无需认证)
	r.POST("/signup", h.User.Signup)
	r.POST("/login", h.User.Login)

	// 需要认证的接口
	authed := r.Group("/")
	authed.Use(middleware.JWTAuth())
	{
		authed.GET("/check-auth", h.User.CheckAuth)
		authed.PUT("/update", h.User.UpdateProfile)
	}
}
