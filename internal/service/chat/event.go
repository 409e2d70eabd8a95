// Package chat 实现聊天系统的实时核心
// event.go
// 实时协议事件信封：JSON {"event": "...", "data": ...}
package chat

import "encoding/json"

// 实时协议事件名
const (
	// EventUserConnected 客户端→服务端：显式身份宣告，data 为 UserId 字符串
	EventUserConnected = "user-connected"
	// EventSendMessage 客户端→服务端：传输层直发消息，data 为消息对象
	EventSendMessage = "send-message"
	// EventOnlineUsers 服务端→客户端：在线用户全量快照，data 为 UserId 数组
	EventOnlineUsers = "online-users"
	// EventReceiveMessage 服务端→客户端：投递给接收方的消息，data 为消息对象
	EventReceiveMessage = "receive-message"
)

// Event 事件信封
// Data 延迟解析，由事件类型决定具体载荷
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EncodeEvent 序列化出站事件
func EncodeEvent(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: name, Data: data})
}

// normalizeUserId 规范化身份提示
// 空串、"undefined"、"null" 是前端缺值的产物，视为没有提示
func normalizeUserId(id string) string {
	switch id {
	case "", "undefined", "null":
		return ""
	}
	return id
}
