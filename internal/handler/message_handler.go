// Package handler 提供 HTTP 请求处理器
// 本文件处理消息相关的 API 请求
package handler

import (
	"net/http"

	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	msgSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc}
}

// GetSidebarUsers 获取联系人列表和未读计数
// GET /messages/users
func (h *MessageHandler) GetSidebarUsers(c *gin.Context) {
	data, err := h.msgSvc.GetSidebarUsers(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{
		"users":          data.Users,
		"unseenMessages": data.UnseenMessages,
	})
}

// GetMessageList 获取与对端的历史记录
// GET /messages/:peerId
func (h *MessageHandler) GetMessageList(c *gin.Context) {
	data, err := h.msgSvc.GetMessageList(c.GetString("user_id"), c.Param("peerId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{"messages": data})
}

// MarkSeen 将对端发来的消息置为已读
// PUT /messages/mark/:peerId
func (h *MessageHandler) MarkSeen(c *gin.Context) {
	n, err := h.msgSvc.MarkSeen(c.GetString("user_id"), c.Param("peerId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{"updatedCount": n})
}

// SendMessage 发送消息
// POST /messages/send/:peerId
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.msgSvc.SendMessage(c.GetString("user_id"), c.Param("peerId"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{"message": data})
}
