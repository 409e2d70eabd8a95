// Package client 提供聊天服务器的 Go 客户端
// 维护一条 WebSocket 会话和一份在线用户镜像：
// 服务器每次推送 online-users 全量快照，客户端整体替换本地集合；
// 断线后定次定间隔重连，重连成功立即重新宣告身份
package client

import (
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 与服务器约定的事件名
const (
	eventUserConnected  = "user-connected"
	eventSendMessage    = "send-message"
	eventOnlineUsers    = "online-users"
	eventReceiveMessage = "receive-message"
)

// State 客户端连接状态
type State int

const (
	StateDisconnected State = iota // 未连接
	StateConnecting                // 连接或重连中
	StateConnected                 // 已连接且已宣告身份
	StateError                     // 重连次数耗尽，不再尝试
)

// Message 客户端收发的消息
type Message struct {
	Id         string    `json:"id"`
	SenderId   string    `json:"senderId"`
	ReceiverId string    `json:"receiverId"`
	Text       string    `json:"text"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"createdAt"`
	IsRead     bool      `json:"isRead"`
}

// event 和服务器一致的事件信封
type event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Options 客户端配置
type Options struct {
	ServerURL     string        // ws://host:port/ws
	UserID        string        // 宣告的身份
	MaxRetries    int           // 断线后最大重连次数，默认 5
	RetryInterval time.Duration // 重连间隔，固定不退避，默认 2s
	OnMessage     func(Message) // 收到 receive-message 时回调，可为 nil
	OnOnline      func([]string) // 在线集合变化时回调，可为 nil
}

// Client 聊天客户端
type Client struct {
	opts Options

	mu     sync.RWMutex
	conn   *websocket.Conn
	online map[string]struct{}
	state  State

	// writeMu 串行化出站写，gorilla 连接不允许并发写
	writeMu sync.Mutex

	quit chan struct{}
	done chan struct{}
}

// New 创建客户端实例，尚未建立连接
func New(opts Options) (*Client, error) {
	if opts.ServerURL == "" {
		return nil, errors.New("client: ServerURL is required")
	}
	if opts.UserID == "" {
		return nil, errors.New("client: UserID is required")
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 2 * time.Second
	}
	return &Client{
		opts:   opts,
		online: make(map[string]struct{}),
		state:  StateDisconnected,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Connect 建立连接并启动读循环
// 首次连接失败直接返回错误，不做重试；运行期断线由读循环自动重连
func (c *Client) Connect() error {
	c.setState(StateConnecting)
	if err := c.dial(); err != nil {
		c.setState(StateDisconnected)
		return err
	}
	go c.run()
	return nil
}

// Close 关闭客户端，停止重连
func (c *Client) Close() {
	close(c.quit)
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
	<-c.done
}

// SendMessage 通过传输层直发一条消息
// 服务器只做在线中继，不落库；需要持久化时走 REST 发送接口
func (c *Client) SendMessage(receiverId, text string) error {
	c.mu.RLock()
	conn := c.conn
	state := c.state
	c.mu.RUnlock()
	if state != StateConnected || conn == nil {
		return errors.New("client: not connected")
	}

	msg := Message{
		SenderId:   c.opts.UserID,
		ReceiverId: receiverId,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	return c.writeEvent(conn, eventSendMessage, msg)
}

// Online 返回当前在线用户镜像的有序快照
func (c *Client) Online() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	users := make([]string, 0, len(c.online))
	for id := range c.online {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}

// IsOnline 判断某个用户当前是否在线
func (c *Client) IsOnline(userId string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.online[userId]
	return ok
}

// State 返回当前连接状态
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// dial 建立一次连接并宣告身份
func (c *Client) dial() error {
	u, err := url.Parse(c.opts.ServerURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("userId", c.opts.UserID)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}

	// 查询参数已携带身份提示，显式宣告兜底一次
	if err := c.writeEvent(conn, eventUserConnected, c.opts.UserID); err != nil {
		conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()
	return nil
}

// run 读循环 + 断线重连
func (c *Client) run() {
	defer close(c.done)
	for {
		c.readLoop()

		// 断线：立即清空在线镜像，避免呈现陈旧的在线状态
		c.replaceOnline(nil)

		select {
		case <-c.quit:
			c.setState(StateDisconnected)
			return
		default:
		}

		if !c.reconnect() {
			return
		}
	}
}

// readLoop 消费服务器推送，连接出错时返回
func (c *Client) readLoop() {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			zap.L().Debug("client read loop exit", zap.Error(err))
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			zap.L().Warn("client: malformed event", zap.Error(err))
			continue
		}

		switch ev.Event {
		case eventOnlineUsers:
			var users []string
			if err := json.Unmarshal(ev.Data, &users); err != nil {
				zap.L().Warn("client: malformed online-users payload", zap.Error(err))
				continue
			}
			c.replaceOnline(users)

		case eventReceiveMessage:
			var msg Message
			if err := json.Unmarshal(ev.Data, &msg); err != nil {
				zap.L().Warn("client: malformed receive-message payload", zap.Error(err))
				continue
			}
			if c.opts.OnMessage != nil {
				c.opts.OnMessage(msg)
			}
		}
	}
}

// reconnect 定次定间隔重连，成功后重新宣告身份
// 次数耗尽进入 StateError，之后不再自动尝试
func (c *Client) reconnect() bool {
	c.setState(StateConnecting)
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		select {
		case <-c.quit:
			c.setState(StateDisconnected)
			return false
		case <-time.After(c.opts.RetryInterval):
		}

		if err := c.dial(); err != nil {
			zap.L().Warn("client reconnect failed",
				zap.Int("attempt", attempt),
				zap.Int("maxRetries", c.opts.MaxRetries),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("client reconnected", zap.Int("attempt", attempt))
		return true
	}
	c.setState(StateError)
	return false
}

// replaceOnline 整体替换在线镜像，从不做增量合并
func (c *Client) replaceOnline(users []string) {
	c.mu.Lock()
	c.online = make(map[string]struct{}, len(users))
	for _, id := range users {
		c.online[id] = struct{}{}
	}
	c.mu.Unlock()

	if c.opts.OnOnline != nil {
		c.opts.OnOnline(users)
	}
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) writeEvent(conn *websocket.Conn, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(event{Event: name, Data: data})
}
