// Package chat 实现聊天系统的实时核心
// hub.go
// 单事件循环：连接生命周期管理 + 在线广播 + 消息中继
// 注册表的所有读写都收拢到这一个 goroutine，天然串行，无需加锁
package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"quick_chat_server/internal/dto/respond"
	"quick_chat_server/pkg/constants"
)

// bindRequest 身份绑定请求
type bindRequest struct {
	userId string
	conn   *UserConn
}

// inbound 连接读协程投递的原始事件
type inbound struct {
	conn *UserConn
	data []byte
}

// Hub 聊天服务器实时中枢
// 事件来源：连接打开时的身份提示、连接读协程、REST 发送路径、连接断开
type Hub struct {
	registry *Registry

	binds       chan bindRequest
	disconnects chan *UserConn
	deliveries  chan *respond.MessageRespond
	events      chan inbound
	snapshots   chan chan []string

	quit chan struct{}
	done chan struct{}
}

// NewHub 创建 Hub 实例
func NewHub() *Hub {
	return &Hub{
		registry:    NewRegistry(),
		binds:       make(chan bindRequest, constants.CHANNEL_SIZE),
		disconnects: make(chan *UserConn, constants.CHANNEL_SIZE),
		deliveries:  make(chan *respond.MessageRespond, constants.CHANNEL_SIZE),
		events:      make(chan inbound, constants.CHANNEL_SIZE),
		snapshots:   make(chan chan []string),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start 启动事件循环，应在独立 goroutine 中运行
func (h *Hub) Start() {
	defer close(h.done)
	for {
		select {
		case req := <-h.binds:
			h.handleBind(req.userId, req.conn)

		case conn := <-h.disconnects:
			h.handleDisconnect(conn)

		case msg := <-h.deliveries:
			h.relay(msg)

		case ev := <-h.events:
			h.handleEvent(ev)

		case reply := <-h.snapshots:
			reply <- h.registry.Snapshot()

		case <-h.quit:
			for _, conn := range h.registry.Connections() {
				h.closeConn(conn)
			}
			return
		}
	}
}

// Close 停止事件循环并关闭所有在线连接
func (h *Hub) Close() {
	close(h.quit)
	<-h.done
	zap.L().Info("chat hub stopped")
}

// Attach 将升级完成的连接接入 Hub
// hint 为连接打开时随查询参数携带的身份提示，缺失时连接保持未绑定，
// 等待后续 user-connected 事件
func (h *Hub) Attach(sock Socket, hint string) *UserConn {
	conn := &UserConn{
		sock: sock,
		hub:  h,
		send: make(chan []byte, constants.CONN_SEND_SIZE),
	}
	go conn.Write()
	go conn.Read()

	if userId := normalizeUserId(hint); userId != "" {
		select {
		case h.binds <- bindRequest{userId: userId, conn: conn}:
		case <-h.quit:
		}
	}
	return conn
}

// Deliver 将一条已持久化的消息转交事件循环做在线投递
// 接收方不在线时静默放弃，消息等待接收方下一次历史拉取
// REST 层通过该入口触达注册表，自身从不直接改动它
func (h *Hub) Deliver(msg *respond.MessageRespond) {
	select {
	case h.deliveries <- msg:
	case <-h.quit:
	}
}

// Online 返回当前在线 UserId 快照
// 快照请求也经过事件循环，与其他注册表操作一样被串行化
func (h *Hub) Online() []string {
	reply := make(chan []string, 1)
	select {
	case h.snapshots <- reply:
		return <-reply
	case <-h.quit:
		return nil
	}
}

// notifyDisconnect 读协程退出时调用，通知事件循环清理
func (h *Hub) notifyDisconnect(conn *UserConn) {
	select {
	case h.disconnects <- conn:
	case <-h.quit:
	}
}

// dispatch 读协程投递入站事件
func (h *Hub) dispatch(conn *UserConn, data []byte) {
	select {
	case h.events <- inbound{conn: conn, data: data}:
	case <-h.quit:
	}
}

// handleBind 处理身份绑定：提示路径和显式宣告路径共用
// 始终信任最近一次绑定；顶替下来的旧连接直接强制关闭，
// 避免同一身份出现两个"持有者"
func (h *Hub) handleBind(userId string, conn *UserConn) {
	if conn.closed {
		return
	}
	displaced := h.registry.Bind(userId, conn)
	if displaced != nil {
		zap.L().Info("displacing previous connection", zap.String("userId", userId))
		h.closeConn(displaced)
	}
	zap.L().Info("user online", zap.String("userId", userId), zap.Int("online", h.registry.Size()))
	h.broadcastOnline()
}

// handleDisconnect 处理连接关闭：反查解绑 + 广播
// 未绑定或已被顶替的连接关闭时注册表无变化，不触发广播
func (h *Hub) handleDisconnect(conn *UserConn) {
	if conn.closed {
		return
	}
	userId, bound := h.registry.Unbind(conn)
	h.closeConn(conn)
	if !bound {
		return
	}
	zap.L().Info("user offline", zap.String("userId", userId), zap.Int("online", h.registry.Size()))
	h.broadcastOnline()
}

// handleEvent 解析入站事件并分发
func (h *Hub) handleEvent(ev inbound) {
	if ev.conn == nil || ev.conn.closed {
		return
	}
	var event Event
	if err := json.Unmarshal(ev.data, &event); err != nil {
		zap.L().Warn("malformed ws event", zap.Error(err))
		return
	}

	switch event.Event {
	case EventUserConnected:
		// 显式身份宣告：data 为 UserId 字符串
		var userId string
		if err := json.Unmarshal(event.Data, &userId); err != nil {
			zap.L().Warn("malformed user-connected payload", zap.Error(err))
			return
		}
		if userId = normalizeUserId(userId); userId == "" {
			return
		}
		h.handleBind(userId, ev.conn)

	case EventSendMessage:
		// 传输层直发路径：与 REST 中继共用同一套查找/推送逻辑
		var msg respond.MessageRespond
		if err := json.Unmarshal(event.Data, &msg); err != nil {
			zap.L().Warn("malformed send-message payload", zap.Error(err))
			return
		}
		h.relay(&msg)

	default:
		zap.L().Warn("unknown ws event", zap.String("event", event.Event))
	}
}

// relay 消息中继：查找接收方连接并推送 receive-message
// 不重试、不排队；接收方离线或推送失败时消息依然安全地躺在存储里
func (h *Hub) relay(msg *respond.MessageRespond) {
	conn, ok := h.registry.Lookup(msg.ReceiverId)
	if !ok {
		zap.L().Debug("receiver offline, skip live delivery", zap.String("receiverId", msg.ReceiverId))
		return
	}
	payload, err := EncodeEvent(EventReceiveMessage, msg)
	if err != nil {
		zap.L().Error("encode receive-message failed", zap.Error(err))
		return
	}
	conn.enqueue(payload)
}

// broadcastOnline 在线广播：注册表每次有效变更后全量推送快照
// 对单个连接的投递是尽力而为，不影响其余连接
func (h *Hub) broadcastOnline() {
	snapshot := h.registry.Snapshot()
	payload, err := EncodeEvent(EventOnlineUsers, snapshot)
	if err != nil {
		zap.L().Error("encode online-users failed", zap.Error(err))
		return
	}
	for _, conn := range h.registry.Connections() {
		conn.enqueue(payload)
	}
}

// closeConn 回收连接：标记关闭、结束写协程、关闭底层句柄
// closed 标记保证 send 通道只被关闭一次
func (h *Hub) closeConn(conn *UserConn) {
	if conn.closed {
		return
	}
	conn.closed = true
	close(conn.send)
	if err := conn.sock.Close(); err != nil {
		zap.L().Debug("close socket", zap.Error(err))
	}
}
