// controllers/checkinout_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"toolify/app"
	"toolify/live"
	"toolify/scan"
	"toolify/workflow"

	"github.com/gin-gonic/gin"
)

type CheckInOutController struct{ *Srv }

func NewCheckInOutController(s *Srv) *CheckInOutController {
	return &CheckInOutController{Srv: s}
}

// POST /api/scan
// 扫码流按帧回调，同一条码会连续出现；去重键用当前会话
func (cc *CheckInOutController) ResolveScan(c *gin.Context) {
	var in struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	sid, _ := c.Get("sessionID")
	sessionID, _ := sid.(string)

	tool, err := cc.Resolver.Resolve(c.Request.Context(), sessionID, in.Code)
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrDuplicateScan):
			// 同一条码重复出现，本帧不处理
			c.Status(http.StatusNoContent)
		case errors.Is(err, scan.ErrNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "no tool found with this barcode"})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, app.H{"tool": tool})
}

// POST /api/scan/reset：扫码对话框关闭，允许重扫同一条码
func (cc *CheckInOutController) ResetScan(c *gin.Context) {
	sid, _ := c.Get("sessionID")
	if sessionID, _ := sid.(string); sessionID != "" {
		cc.Resolver.Forget(sessionID)
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/tools/:id/checkout
func (cc *CheckInOutController) CheckOut(c *gin.Context) {
	toolID := c.Param("id")
	if toolID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing tool id"})
		return
	}

	var in struct {
		JobSite        *string    `json:"jobSite"`
		ExpectedReturn *time.Time `json:"expectedReturnDate"`
	}
	_ = c.ShouldBindJSON(&in)

	tool, err := cc.Flow.CheckOut(c.Request.Context(), workflow.CheckOutInput{
		ToolID:         toolID,
		User:           ctxEmail(c),
		JobSite:        in.JobSite,
		ExpectedReturn: in.ExpectedReturn,
	})
	if err != nil {
		cc.writeFlowError(c, err, "check out")
		return
	}

	cc.Hub.Broadcast(live.EventToolUpdated, tool)
	cc.Hub.Broadcast(live.EventNotificationCreated, app.H{"type": "Check-Out", "toolName": tool.Name})
	c.JSON(http.StatusOK, app.H{"tool": tool})
}

// POST /api/tools/:id/checkin
func (cc *CheckInOutController) CheckIn(c *gin.Context) {
	toolID := c.Param("id")
	if toolID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing tool id"})
		return
	}

	tool, err := cc.Flow.CheckIn(c.Request.Context(), toolID, ctxEmail(c))
	if err != nil {
		cc.writeFlowError(c, err, "check in")
		return
	}

	cc.Hub.Broadcast(live.EventToolUpdated, tool)
	cc.Hub.Broadcast(live.EventNotificationCreated, app.H{"type": "Check-In", "toolName": tool.Name})
	c.JSON(http.StatusOK, app.H{"tool": tool})
}

func (cc *CheckInOutController) writeFlowError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, workflow.ErrToolNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "tool not found"})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, app.H{"error": "tool is not in a state to " + action})
	case errors.Is(err, workflow.ErrNoUser):
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
