// controllers/live_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type LiveController struct{ *Srv }

func NewLiveController(s *Srv) *LiveController { return &LiveController{Srv: s} }

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 鉴权走 Cookie + AdminOnly 中间件，升级本身放行
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pongWait = 60 * time.Second

// GET /api/live（管理员）：升级成 WebSocket，推送变更事件
// 对应原来前端对各集合的 onSnapshot 监听。
// 所有写（事件和 ping）都归 hub 里每个连接的写 goroutine，这里只读。
func (lc *LiveController) Subscribe(c *gin.Context) {
	userID := ctxUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		lc.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	lc.Hub.Register(userID, conn)
	lc.readLoop(conn, userID)
}

// readLoop 只为感知断开；客户端不上行业务消息
func (lc *LiveController) readLoop(conn *websocket.Conn, userID string) {
	defer lc.Hub.Disconnect(userID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				lc.Log.Debug("websocket closed unexpectedly",
					zap.String("userID", userID), zap.Error(err))
			}
			return
		}
	}
}
