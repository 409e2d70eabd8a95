// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"quick_chat_server/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 按 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail 按邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// FindAllExcept 查找除指定用户外的所有用户
	FindAllExcept(excludeUuid string) ([]model.UserInfo, error)
	// Create 创建用户
	Create(user *model.UserInfo) error
	// Update 更新用户信息
	Update(user *model.UserInfo) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建消息
	Create(message *model.Message) error
	// FindBetween 按双方 UUID 查找消息（双向，按创建时间升序）
	FindBetween(userOneId, userTwoId string) ([]model.Message, error)
	// MarkRead 将 sender 发给 receiver 的未读消息置为已读，返回更新条数
	MarkRead(senderId, receiverId string) (int64, error)
	// CountUnreadBySender 统计发给 receiver 的未读消息数，按发送者分组
	CountUnreadBySender(receiverId string) (map[string]int64, error)
}

// Repositories 聚合所有 Repository 实例
type Repositories struct {
	User    UserRepository
	Message MessageRepository
}

// NewRepositories 创建 Repository 聚合实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Message: NewMessageRepository(db),
	}
}
