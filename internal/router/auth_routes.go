// Package router 提供 HTTP 路由注册
// 本文件定义 Token 管理相关的路由
package router

import (
	"quick_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册 Token 管理路由
func RegisterAuthRoutes(r *gin.Engine, h *handler.Handlers) {
	authGroup := r.Group("/auth")
	{
		// POST /auth/refresh - 用 Refresh Token 换取新的 Access Token
		authGroup.POST("/refresh", h.Auth.Refresh)
	}
}
