// controllers/history_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"toolify/app"
	"toolify/db"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryController struct{ *Srv }

func NewHistoryController(s *Srv) *HistoryController { return &HistoryController{Srv: s} }

func historyQuery(c *gin.Context) db.HistoryQuery {
	q := db.HistoryQuery{
		ToolID: c.Query("toolId"),
		User:   c.Query("user"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "50"))
	return q
}

// GET /api/history/checkouts?toolId=&user=&page=&size=
func (hc *HistoryController) ListCheckOuts(c *gin.Context) {
	entries, total, err := hc.Repo.ListCheckOuts(c.Request.Context(), historyQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": total, "entries": entries})
}

// GET /api/history/checkins?toolId=&user=&page=&size=
func (hc *HistoryController) ListCheckIns(c *gin.Context) {
	entries, total, err := hc.Repo.ListCheckIns(c.Request.Context(), historyQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": total, "entries": entries})
}

// POST /api/admin/history/reset（管理员）：流水唯一的非追加操作
func (hc *HistoryController) ResetHistory(c *gin.Context) {
	if err := hc.Repo.ResetHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	hc.Log.Warn("history reset by admin", zap.String("admin", ctxEmail(c)))
	c.JSON(http.StatusOK, app.H{"ok": true})
}
