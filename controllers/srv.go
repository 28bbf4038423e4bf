// controllers/srv.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"toolify/app"
	"toolify/db"
	"toolify/live"
	"toolify/scan"
	"toolify/session"
	"toolify/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Srv struct {
	Repo      *db.Repo
	Flow      *workflow.Service
	Resolver  *scan.Resolver
	AppSess   *session.AppSessionStore
	Hub       *live.Hub
	Log       *zap.Logger
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:      repo,
		Flow:      workflow.NewService(db.NewCheckoutStore(a.DB), a.Log),
		Resolver:  scan.NewResolver(repo, a.Log),
		AppSess:   a.AppSessions(),
		Hub:       a.Hub,
		Log:       a.Log,
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// 登录成功：创建会话 + 触发登录快照
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID string, ip, ua string) error {
	_ = s.Repo.TouchUserLogin(ctx, userID, ip, ua) // 登录快照失败不阻塞登录
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

func ctxEmail(c *app.Ctx) string {
	v, _ := c.Get("email")
	email, _ := v.(string)
	return email
}

func ctxUserID(c *app.Ctx) string {
	v, _ := c.Get("userID")
	uid, _ := v.(string)
	return uid
}
