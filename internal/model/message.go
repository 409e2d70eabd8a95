// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储两人私聊消息
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiveId 接收者 UUID
	ReceiveId string `gorm:"column:receive_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息文本内容
	// 纯图片消息时为空字符串
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// ImageUrl 图片 URL
	// 内嵌图片上传成功后的访问链接，无图片时为空
	ImageUrl string `gorm:"column:image_url;type:varchar(255);comment:图片url"`

	// IsRead 已读标记
	// 接收方拉取历史记录或显式标记已读时置为 true
	IsRead bool `gorm:"column:is_read;index;not null;default:false;comment:是否已读"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
