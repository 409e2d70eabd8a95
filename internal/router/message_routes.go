package router

import (
	"quick_chat_server/internal/handler"
	"quick_chat_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由，全部需要认证
func RegisterMessageRoutes(r *gin.Engine, h *handler.Handlers) {
	msgGroup := r.Group("/messages")
	msgGroup.Use(middleware.JWTAuth())
	{
		msgGroup.GET("/users", h.Message.GetSidebarUsers)
		msgGroup.GET("/:peerId", h.Message.GetMessageList)
		msgGroup.PUT("/mark/:peerId", h.Message.MarkSeen)
		msgGroup.POST("/send/:peerId", h.Message.SendMessage)
	}
}
