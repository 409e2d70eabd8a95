// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"quick_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
// 在 http_server.Init() 中调用
func RegisterRoutes(r *gin.Engine, h *handler.Handlers) {
	RegisterUserRoutes(r, h)      // 账号路由
	RegisterAuthRoutes(r, h)      // Token 刷新路由
	RegisterMessageRoutes(r, h)   // 消息路由
	RegisterWebSocketRoutes(r, h) // WebSocket 路由
	RegisterStatusRoutes(r, h)    // 状态探活路由
}
