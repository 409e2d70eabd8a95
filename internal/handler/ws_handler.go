// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 接入
package handler

import (
	"net/http"

	"quick_chat_server/internal/service/chat"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// upgrader WebSocket 协议升级器
// 浏览器客户端跨端口接入，放开 Origin 检查
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WsHandler WebSocket 接入处理器
type WsHandler struct {
	hub *chat.Hub
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(hub *chat.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Connect 升级 HTTP 连接并接入聊天中枢
// GET /ws?userId=xxx
// userId 是身份提示，可缺省；缺省连接等待后续 user-connected 事件绑定
func (h *WsHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Attach(conn, c.Query("userId"))
}
