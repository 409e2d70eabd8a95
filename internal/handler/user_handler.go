// Package handler 提供 HTTP 请求处理器
// 本文件处理用户账号相关的 API 请求
package handler

import (
	"net/http"

	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Signup 用户注册
// POST /signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, gin.H{
		"message":      "User registered successfully",
		"user":         data.User,
		"token":        data.Token,
		"refreshToken": data.RefreshToken,
	})
}

// Login 用户登录
// POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{
		"message":      "Logged in successfully",
		"user":         data.User,
		"token":        data.Token,
		"refreshToken": data.RefreshToken,
	})
}

// CheckAuth 返回当前登录用户信息
// GET /check-auth
func (h *UserHandler) CheckAuth(c *gin.Context) {
	data, err := h.userSvc.CheckAuth(c.GetString("user_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{"user": data})
}

// UpdateProfile 更新个人资料
// PUT /update
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateProfile(c.GetString("user_id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    data,
	})
}
