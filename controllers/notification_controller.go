// controllers/notification_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"toolify/app"

	"github.com/gin-gonic/gin"
)

type NotificationController struct{ *Srv }

func NewNotificationController(s *Srv) *NotificationController {
	return &NotificationController{Srv: s}
}

// GET /api/notifications?unread=1&limit=
func (nc *NotificationController) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "1" || c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ns, err := nc.Repo.ListNotifications(c.Request.Context(), unreadOnly, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	unread, _ := nc.Repo.CountUnreadNotifications(c.Request.Context())
	c.JSON(http.StatusOK, app.H{"notifications": ns, "unread": unread})
}

// PATCH /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid id"})
		return
	}
	if err := nc.Repo.MarkNotificationRead(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/notifications/read-all
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	n, err := nc.Repo.MarkAllNotificationsRead(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "updated": n})
}
