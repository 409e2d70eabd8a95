package router

import (
	"quick_chat_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 接入路由
// 连接身份由 userId 查询参数或后续 user-connected 事件确定，不走 JWT 中间件
func RegisterWebSocketRoutes(r *gin.Engine, h *handler.Handlers) {
	r.GET("/ws", h.Ws.Connect)
}
