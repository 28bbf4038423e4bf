package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialInto 起一个真实的 websocket 连接并注册进 hub，返回客户端
func dialInto(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestBroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialInto(t, hub, "user-1")
	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Broadcast(EventToolUpdated, map[string]string{"id": "tool-1"})

	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	var ev Event
	require.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, EventToolUpdated, ev.Type)
	assert.False(t, ev.Timestamp.IsZero())
}

// 多个请求 handler 会同时调 Broadcast；写连接只能有一个 goroutine，
// 并发广播必须全部完整送达，帧不能被搅乱
func TestConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialInto(t, hub, "user-1")
	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)

	const writers = 4
	const perWriter = 2 // 总量压在缓冲之内，避免慢消费被摘掉

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(EventToolUpdated, map[string]string{"id": "tool-1"})
			}
		}()
	}
	wg.Wait()

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < writers*perWriter; i++ {
		var ev Event
		require.NoError(t, client.ReadJSON(&ev))
		assert.Equal(t, EventToolUpdated, ev.Type)
	}
	assert.Equal(t, 1, hub.OnlineCount())
}

func TestRegisterReplacesOldConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	old := dialInto(t, hub, "user-1")
	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)

	// 同一用户再次连接，旧连接被顶掉，在线数不变
	_ = dialInto(t, hub, "user-1")
	assert.Equal(t, 1, hub.OnlineCount())

	_ = old.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := old.ReadMessage()
	assert.Error(t, err)
}

func TestDisconnectIgnoresReplacedConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	serverConns := make(chan *websocket.Conn, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register("user-1", conn)
		serverConns <- conn
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	c1, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c1.Close()
	old := <-serverConns

	c2, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c2.Close()
	<-serverConns

	// 被顶掉的旧连接退出时只摘自己，新连接保持在线
	hub.Disconnect("user-1", old)
	assert.Equal(t, 1, hub.OnlineCount())

	hub.Broadcast(EventToolUpdated, nil)
	_ = c2.SetReadDeadline(time.Now().Add(time.Second))
	var ev Event
	require.NoError(t, c2.ReadJSON(&ev))
	assert.Equal(t, EventToolUpdated, ev.Type)
}

func TestUnregister(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	_ = dialInto(t, hub, "user-1")
	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Unregister("user-1")
	assert.Zero(t, hub.OnlineCount())

	// 摘掉不存在的用户是 no-op
	hub.Unregister("ghost")
}

func TestBroadcastDropsDeadConnections(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client := dialInto(t, hub, "user-1")
	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)
	_ = client.Close()

	// 对已关闭 socket 的第一次写未必立刻失败，循环广播直到连接被摘掉
	require.Eventually(t, func() bool {
		hub.Broadcast(EventToolRemoved, nil)
		return hub.OnlineCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}
