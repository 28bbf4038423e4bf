// live/hub.go
package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// 事件类型：前端据此决定刷新哪块数据（对应原来的集合监听）
const (
	EventToolUpdated         = "tool.updated"
	EventToolRemoved         = "tool.removed"
	EventNotificationCreated = "notification.created"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 16
)

type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// client 包住一条连接。gorilla 的 Conn 同一时刻只允许一个写者，
// 所以所有写（事件和 ping）都收进 writeLoop 这一个 goroutine。
type client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan Event
	done   chan struct{}
	once   sync.Once
}

// shutdown 幂等；关 done 让 writeLoop 退出，关底层连接让 readLoop 退出
func (c *client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *client) writeLoop() {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	defer c.hub.drop(c)

	for {
		select {
		case ev := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-t.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Hub 给所有在线管理端推送变更事件。一个用户一条连接，重复连接顶掉旧的。
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*client // userID -> client
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*client)}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	cl := &client{
		hub:    h,
		userID: userID,
		conn:   conn,
		send:   make(chan Event, sendBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if old, ok := h.conns[userID]; ok && old != nil {
		old.shutdown()
	}
	h.conns[userID] = cl
	h.mu.Unlock()

	go cl.writeLoop()
}

func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	cl, ok := h.conns[userID]
	h.mu.Unlock()
	if ok && cl != nil {
		h.drop(cl)
	}
}

// Disconnect 只在 conn 仍是该用户当前注册的连接时才摘掉；
// 被顶掉的旧连接的读循环不能误杀新连接
func (h *Hub) Disconnect(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	cl, ok := h.conns[userID]
	h.mu.Unlock()
	if ok && cl != nil && cl.conn == conn {
		h.drop(cl)
	}
}

// drop 只摘掉这一个 client；同一用户的新连接不受影响
func (h *Hub) drop(c *client) {
	c.shutdown()
	h.mu.Lock()
	if cur, ok := h.conns[c.userID]; ok && cur == c {
		delete(h.conns, c.userID)
	}
	h.mu.Unlock()
}

// Broadcast 尽力而为：投进各连接的发送队列，消费不过来的连接直接摘掉
func (h *Hub) Broadcast(eventType string, payload any) {
	ev := Event{Type: eventType, Payload: payload, Timestamp: time.Now().UTC()}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- ev:
		case <-c.done:
		default:
			h.drop(c)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Close() {
	h.mu.Lock()
	for uid, c := range h.conns {
		if c != nil {
			c.shutdown()
		}
		delete(h.conns, uid)
	}
	h.mu.Unlock()
}
