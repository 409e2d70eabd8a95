// Package chat 实现聊天系统的实时核心
// conn.go
// WebSocket 连接封装：读协程投递事件给 Hub，写协程消费出站缓冲
package chat

import (
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Socket 连接句柄需要的最小操作集合
// *websocket.Conn 直接满足该接口，测试中可用内存实现替代
type Socket interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// UserConn 表示一个 WebSocket 客户端连接
// 注册表只持有非拥有引用，连接本身归读写协程所有
type UserConn struct {
	sock Socket
	hub  *Hub
	send chan []byte // 出站缓冲，由写协程消费

	// closed 仅由 Hub 事件循环读写，标记连接已被回收
	closed bool
}

// Read 从 WebSocket 读取事件并投递给 Hub
// 读出错即视为连接关闭，通知 Hub 做注册表清理
func (c *UserConn) Read() {
	defer c.hub.notifyDisconnect(c)
	for {
		_, data, err := c.sock.ReadMessage()
		if err != nil {
			zap.L().Debug("ws read loop exit", zap.Error(err))
			return
		}
		c.hub.dispatch(c, data)
	}
}

// Write 从出站缓冲读取数据并写入 WebSocket
func (c *UserConn) Write() {
	for data := range c.send {
		if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
			zap.L().Debug("ws write loop exit", zap.Error(err))
			return
		}
	}
}

// enqueue 尽力投递：缓冲满时丢弃
// 投递失败不影响其他连接，接收方靠下一次历史拉取补偿
func (c *UserConn) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		zap.L().Warn("ws send buffer full, dropping frame")
	}
}
