// Package handler 提供 HTTP 请求处理器
// 本文件处理令牌刷新
package handler

import (
	"net/http"

	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 令牌刷新处理器
type AuthHandler struct {
	userSvc service.UserService
}

// NewAuthHandler 创建令牌处理器实例
func NewAuthHandler(userSvc service.UserService) *AuthHandler {
	return &AuthHandler{userSvc: userSvc}
}

// Refresh 用 Refresh Token 换取新的 Access Token
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	token, err := h.userSvc.RefreshToken(req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{"token": token})
}
