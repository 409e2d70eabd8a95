package router

import (
	"quick_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterStatusRoutes 注册状态探活路由
func RegisterStatusRoutes(r *gin.Engine, h *handler.Handlers) {
	r.GET("/status", h.Status.Status)
}
