package respond

import (
	"strconv"
	"time"

	"quick_chat_server/internal/model"
)

// MessageRespond 消息响应
// Id 为雪花 ID 的十进制字符串，避免 JavaScript 精度丢失
// 同时作为 WebSocket receive-message 事件的载荷
type MessageRespond struct {
	Id         string    `json:"id"`
	SenderId   string    `json:"senderId"`
	ReceiverId string    `json:"receiverId"`
	Text       string    `json:"text"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
	IsRead     bool      `json:"isRead"`
}

// NewMessageRespond 从数据库模型构建消息响应
func NewMessageRespond(m *model.Message) *MessageRespond {
	return &MessageRespond{
		Id:         strconv.FormatInt(m.Uuid, 10),
		SenderId:   m.SendId,
		ReceiverId: m.ReceiveId,
		Text:       m.Content,
		Image:      m.ImageUrl,
		CreatedAt:  m.CreatedAt,
		IsRead:     m.IsRead,
	}
}

// SidebarRespond 侧边栏响应：联系人列表 + 未读计数
// UnseenMessages 以发送者 UserId 为键
type SidebarRespond struct {
	Users          []UserRespond    `json:"users"`
	UnseenMessages map[string]int64 `json:"unseenMessages"`
}
