// controllers/tool_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"toolify/app"
	"toolify/db"
	"toolify/live"
	"toolify/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ToolController struct{ *Srv }

func NewToolController(s *Srv) *ToolController { return &ToolController{Srv: s} }

// GET /api/tools?q=&status=&page=&size=
func (tc *ToolController) ListTools(c *gin.Context) {
	q := db.ToolsQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := tc.Repo.ListTools(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/tools/:id
func (tc *ToolController) GetTool(c *gin.Context) {
	t, err := tc.Repo.FindToolByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "tool not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"tool": t})
}

// POST /api/tools（管理员）
func (tc *ToolController) CreateTool(c *gin.Context) {
	var in struct {
		Name         string  `json:"name" binding:"required"`
		Model        string  `json:"model"`
		SerialNumber string  `json:"serialNumber"`
		Quantity     int     `json:"quantity"`
		Price        float64 `json:"price"`
		Status       string  `json:"status"`
		WithBarcode  bool    `json:"withBarcode"` // true 则立刻分配条码
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	if in.Price <= 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "price must be positive"})
		return
	}
	status := in.Status
	switch status {
	case "":
		status = models.StatusAvailable
	case models.StatusAvailable, models.StatusMaintenance:
	default:
		// 新建就 Checked Out 说不通，借出必须走工作流
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid initial status"})
		return
	}

	t := &models.Tool{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		Quantity:     in.Quantity,
		Price:        in.Price,
		Status:       status,
	}
	if in.WithBarcode {
		code := uuid.NewString()
		t.Barcode = &code
	}
	if err := tc.Repo.CreateTool(c.Request.Context(), t); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	t.Refresh()
	tc.Hub.Broadcast(live.EventToolUpdated, t)
	c.JSON(http.StatusCreated, app.H{"tool": t})
}

// PATCH /api/tools/:id（管理员，部分字段）
// 状态是唯一的可用性开关；维修中也从这里设
func (tc *ToolController) UpdateTool(c *gin.Context) {
	var in struct {
		Name         *string  `json:"name"`
		Model        *string  `json:"model"`
		SerialNumber *string  `json:"serialNumber"`
		Quantity     *int     `json:"quantity"`
		Price        *float64 `json:"price"`
		Status       *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Model != nil {
		fields["model"] = *in.Model
	}
	if in.SerialNumber != nil {
		fields["serial_number"] = *in.SerialNumber
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			c.JSON(http.StatusBadRequest, app.H{"error": "quantity must be >= 1"})
			return
		}
		fields["quantity"] = *in.Quantity
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			c.JSON(http.StatusBadRequest, app.H{"error": "price must be positive"})
			return
		}
		fields["price"] = *in.Price
	}
	if in.Status != nil {
		switch *in.Status {
		case models.StatusAvailable, models.StatusCheckedOut, models.StatusMaintenance:
			fields["status"] = *in.Status
		default:
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
			return
		}
	}

	t, err := tc.Repo.UpdateToolFields(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "tool not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Hub.Broadcast(live.EventToolUpdated, t)
	c.JSON(http.StatusOK, app.H{"tool": t})
}

// POST /api/tools/:id/barcode（管理员）：分配条码，只此一次
func (tc *ToolController) AssignBarcode(c *gin.Context) {
	code := uuid.NewString()
	err := tc.Repo.AssignBarcode(c.Request.Context(), c.Param("id"), code)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "tool not found"})
		case errors.Is(err, db.ErrBarcodeAssigned):
			c.JSON(http.StatusConflict, app.H{"error": "tool already has a barcode"})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, app.H{"barcode": code})
}

// DELETE /api/tools/:id（管理员）：搬进 removed_tools，可恢复
func (tc *ToolController) RemoveTool(c *gin.Context) {
	rec, err := tc.Repo.RemoveTool(c.Request.Context(), c.Param("id"), ctxEmail(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "tool not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Hub.Broadcast(live.EventToolRemoved, app.H{"toolId": rec.ToolID})
	c.JSON(http.StatusOK, app.H{"removed": rec})
}

// GET /api/tools/removed/list（管理员）
func (tc *ToolController) ListRemovedTools(c *gin.Context) {
	recs, err := tc.Repo.ListRemovedTools(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"removed": recs})
}

// POST /api/tools/removed/:id/restore（管理员）
func (tc *ToolController) RestoreTool(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid id"})
		return
	}
	t, err := tc.Repo.RestoreTool(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "removed tool not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Hub.Broadcast(live.EventToolUpdated, t)
	c.JSON(http.StatusOK, app.H{"tool": t})
}

// POST /api/admin/tools/reset-availability（管理员，救火开关）
func (tc *ToolController) ResetAvailability(c *gin.Context) {
	n, err := tc.Repo.ResetAvailability(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	tc.Log.Warn("availability reset by admin",
		zap.String("admin", ctxEmail(c)),
		zap.Int64("updated", n))
	c.JSON(http.StatusOK, app.H{"ok": true, "updated": n})
}
