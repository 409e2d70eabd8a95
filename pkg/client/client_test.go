package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// testServer 模拟服务器：记录连接时的身份，推送在线快照和消息
type testServer struct {
	*httptest.Server

	mu        sync.Mutex
	hints     []string // 每次连接携带的 userId 查询参数
	announces []string // 每次连接收到的 user-connected 宣告
	conns     []*websocket.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.mu.Lock()
		ts.hints = append(ts.hints, r.URL.Query().Get("userId"))
		ts.conns = append(ts.conns, conn)
		ts.mu.Unlock()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev event
			if json.Unmarshal(data, &ev) != nil {
				continue
			}
			if ev.Event == eventUserConnected {
				var userId string
				_ = json.Unmarshal(ev.Data, &userId)
				ts.mu.Lock()
				ts.announces = append(ts.announces, userId)
				ts.mu.Unlock()
			}
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func (ts *testServer) push(t *testing.T, idx int, name string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	ts.mu.Lock()
	conn := ts.conns[idx]
	ts.mu.Unlock()
	if err := conn.WriteJSON(event{Event: name, Data: data}); err != nil {
		t.Fatalf("push event: %v", err)
	}
}

func (ts *testServer) connCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.conns)
}

func (ts *testServer) announceCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.announces)
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newConnectedClient(t *testing.T, ts *testServer, opts Options) *Client {
	t.Helper()
	opts.ServerURL = ts.wsURL()
	if opts.UserID == "" {
		opts.UserID = "alice"
	}
	if opts.RetryInterval == 0 {
		opts.RetryInterval = 50 * time.Millisecond
	}
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestConnectAnnouncesIdentity(t *testing.T) {
	ts := newTestServer(t)
	c := newConnectedClient(t, ts, Options{UserID: "alice"})

	waitFor(t, func() bool { return ts.announceCount() == 1 }, "identity announce")
	ts.mu.Lock()
	hint, announce := ts.hints[0], ts.announces[0]
	ts.mu.Unlock()
	if hint != "alice" || announce != "alice" {
		t.Fatalf("hint = %q, announce = %q, want alice", hint, announce)
	}
	if c.State() != StateConnected {
		t.Fatalf("state = %v, want StateConnected", c.State())
	}
}

func TestOnlineSetIsReplacedWholesale(t *testing.T) {
	ts := newTestServer(t)
	c := newConnectedClient(t, ts, Options{UserID: "alice"})
	waitFor(t, func() bool { return ts.connCount() == 1 }, "connection")

	ts.push(t, 0, eventOnlineUsers, []string{"alice", "bob", "carol"})
	waitFor(t, func() bool { return c.IsOnline("carol") }, "first snapshot")

	// 新快照整体替换，旧成员不残留
	ts.push(t, 0, eventOnlineUsers, []string{"alice"})
	waitFor(t, func() bool { return !c.IsOnline("bob") && !c.IsOnline("carol") }, "second snapshot")
	if got := c.Online(); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("online = %v, want [alice]", got)
	}
}

func TestReceiveMessageCallback(t *testing.T) {
	ts := newTestServer(t)
	received := make(chan Message, 1)
	newConnectedClient(t, ts, Options{
		UserID:    "alice",
		OnMessage: func(m Message) { received <- m },
	})
	waitFor(t, func() bool { return ts.connCount() == 1 }, "connection")

	ts.push(t, 0, eventReceiveMessage, Message{
		Id: "1", SenderId: "bob", ReceiverId: "alice", Text: "hello",
	})

	select {
	case msg := <-received:
		if msg.SenderId != "bob" || msg.Text != "hello" {
			t.Fatalf("message = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message callback")
	}
}

func TestReconnectReannouncesAndClearsStaleOnline(t *testing.T) {
	ts := newTestServer(t)
	c := newConnectedClient(t, ts, Options{UserID: "alice", MaxRetries: 10})
	waitFor(t, func() bool { return ts.connCount() == 1 }, "first connection")

	ts.push(t, 0, eventOnlineUsers, []string{"alice", "bob"})
	waitFor(t, func() bool { return c.IsOnline("bob") }, "snapshot")

	// 服务器踢掉连接：客户端清空镜像并重连
	ts.mu.Lock()
	ts.conns[0].Close()
	ts.mu.Unlock()

	waitFor(t, func() bool { return ts.connCount() == 2 }, "reconnect")
	waitFor(t, func() bool { return ts.announceCount() == 2 }, "re-announce")
	waitFor(t, func() bool { return !c.IsOnline("bob") }, "stale online cleared")
	waitFor(t, func() bool { return c.State() == StateConnected }, "connected state")
}

func TestRetriesExhaustedEntersErrorState(t *testing.T) {
	ts := newTestServer(t)
	c := newConnectedClient(t, ts, Options{
		UserID:        "alice",
		MaxRetries:    2,
		RetryInterval: 20 * time.Millisecond,
	})
	waitFor(t, func() bool { return ts.connCount() == 1 }, "connection")

	// 服务器彻底下线：重连必然失败
	ts.mu.Lock()
	conn := ts.conns[0]
	ts.mu.Unlock()
	ts.Close()
	conn.Close()

	waitFor(t, func() bool { return c.State() == StateError }, "error state")
	if c.SendMessage("bob", "hi") == nil {
		t.Fatalf("send in error state must fail")
	}
}

func TestSendMessageGoesOverTheWire(t *testing.T) {
	got := make(chan Message, 1)
	// 服务器端另行捕获 send-message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev event
			if json.Unmarshal(data, &ev) != nil {
				continue
			}
			if ev.Event == eventSendMessage {
				var msg Message
				_ = json.Unmarshal(ev.Data, &msg)
				got <- msg
			}
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(Options{
		ServerURL: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		UserID:    "alice",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(c.Close)

	if err := c.SendMessage("bob", "over the wire"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	select {
	case msg := <-got:
		if msg.SenderId != "alice" || msg.ReceiverId != "bob" || msg.Text != "over the wire" {
			t.Fatalf("message = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for send-message")
	}
}
