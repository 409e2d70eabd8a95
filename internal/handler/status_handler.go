// Package handler 提供 HTTP 请求处理器
// 本文件处理服务状态查询
package handler

import (
	"net/http"

	"quick_chat_server/internal/service/chat"

	"github.com/gin-gonic/gin"
)

// StatusHandler 服务状态处理器
type StatusHandler struct {
	hub *chat.Hub
}

// NewStatusHandler 创建状态处理器实例
func NewStatusHandler(hub *chat.Hub) *StatusHandler {
	return &StatusHandler{hub: hub}
}

// Status 返回服务存活状态和当前在线用户快照
// GET /status
func (h *StatusHandler) Status(c *gin.Context) {
	HandleSuccess(c, http.StatusOK, gin.H{
		"status": "ok",
		"online": h.hub.Online(),
	})
}
