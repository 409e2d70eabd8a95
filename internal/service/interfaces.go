// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"quick_chat_server/internal/dto/request"
	"quick_chat_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理注册、登录、认证检查、资料更新
type UserService interface {
	// Register 用户注册，返回用户信息和 Token 对
	Register(req request.RegisterRequest) (*respond.AuthRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.AuthRespond, error)
	// CheckAuth 按 UserId 返回当前用户信息（账号已删除返回 CodeNotFound）
	CheckAuth(userId string) (*respond.UserRespond, error)
	// UpdateProfile 更新个人资料，头像上传失败时账号保持原样
	UpdateProfile(userId string, req request.UpdateProfileRequest) (*respond.UserRespond, error)
	// RefreshToken 用 Refresh Token 换取新的 Access Token
	RefreshToken(refreshToken string) (string, error)
}

// MessageService 消息业务接口
// 处理联系人列表、历史记录、已读标记和消息发送
type MessageService interface {
	// GetSidebarUsers 获取联系人列表（排除调用者）和未读计数
	GetSidebarUsers(userId string) (*respond.SidebarRespond, error)
	// GetMessageList 获取与对端的双向历史记录，副作用：对端发来的未读消息置为已读
	GetMessageList(userId, peerId string) ([]respond.MessageRespond, error)
	// MarkSeen 将对端发来的未读消息置为已读，返回更新条数
	MarkSeen(userId, peerId string) (int64, error)
	// SendMessage 发送消息：校验、上传图片、持久化、触发在线投递
	SendMessage(senderId, receiverId string, req request.SendMessageRequest) (*respond.MessageRespond, error)
}
