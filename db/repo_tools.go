// db/repo_tools.go
package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"toolify/models"

	"gorm.io/gorm"
)

var ErrBarcodeAssigned = errors.New("tool already has a barcode")

// Tools

func (r *Repo) CreateTool(ctx context.Context, t *models.Tool) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *Repo) FindToolByID(ctx context.Context, id string) (*models.Tool, error) {
	var t models.Tool
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindToolsByBarcode 精确匹配；取 2 条足够让上层判断条码是否撞了
func (r *Repo) FindToolsByBarcode(ctx context.Context, code string) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.DB.WithContext(ctx).
		Where("barcode = ?", code).
		Order("id ASC").
		Limit(2).
		Find(&tools).Error
	return tools, err
}

type ToolsQuery struct {
	Q      string // 模糊搜索：name/model/serial
	Status string // "", "Available", "Checked Out", "Under Maintenance"
	Page   int
	Size   int
}

type PagedTools struct {
	Total int64         `json:"total"`
	Tools []models.Tool `json:"tools"`
}

func (r *Repo) ListTools(ctx context.Context, q ToolsQuery) (*PagedTools, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Tool{})
	if s := strings.TrimSpace(q.Q); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(model) LIKE ? OR LOWER(serial_number) LIKE ?", pat, pat, pat)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var tools []models.Tool
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&tools).Error; err != nil {
		return nil, err
	}
	return &PagedTools{Total: total, Tools: tools}, nil
}

// UpdateToolFields 管理端的部分更新；不许改借出归属字段，那些归工作流管
func (r *Repo) UpdateToolFields(ctx context.Context, id string, fields map[string]any) (*models.Tool, error) {
	allowed := map[string]bool{
		"name": true, "model": true, "serial_number": true,
		"quantity": true, "price": true, "status": true, "job_site": true,
	}
	for k := range fields {
		if !allowed[k] {
			delete(fields, k)
		}
	}
	if len(fields) == 0 {
		return r.FindToolByID(ctx, id)
	}
	// 改回 Available 必须连持有人字段一起清，不留“可借却有人拿着”的脏状态
	if s, ok := fields["status"]; ok && s == models.StatusAvailable {
		fields["checked_out_by"] = nil
		fields["checked_in_by"] = nil
		fields["job_site"] = nil
		fields["expected_return_date"] = nil
	}
	res := r.DB.WithContext(ctx).Model(&models.Tool{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindToolByID(ctx, id)
}

// AssignBarcode 条码只分配一次；已有条码的工具直接拒绝
func (r *Repo) AssignBarcode(ctx context.Context, id, code string) error {
	res := r.DB.WithContext(ctx).Model(&models.Tool{}).
		Where("id = ? AND barcode IS NULL", id).
		Update("barcode", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.Tool{}).
			Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrBarcodeAssigned
	}
	return nil
}

// ListToolsWithoutBarcode 给补码命令用
func (r *Repo) ListToolsWithoutBarcode(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.DB.WithContext(ctx).
		Where("barcode IS NULL").
		Order("created_at ASC").
		Find(&tools).Error
	return tools, err
}

// RemoveTool 软删除：整行搬进 removed_tools，再删原行，同一事务
func (r *Repo) RemoveTool(ctx context.Context, id, removedBy string) (*models.RemovedTool, error) {
	var rec *models.RemovedTool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Tool
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}
		rec = &models.RemovedTool{
			ToolID:       t.ID,
			Name:         t.Name,
			Model:        t.Model,
			SerialNumber: t.SerialNumber,
			Quantity:     t.Quantity,
			Price:        t.Price,
			Status:       t.Status,
			Barcode:      t.Barcode,
			RemovedBy:    removedBy,
			RemovedAt:    time.Now().UTC(),
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tool{ID: t.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RestoreTool 从 removed_tools 搬回 tools；恢复成 Available、无持有人
func (r *Repo) RestoreTool(ctx context.Context, removedID uint) (*models.Tool, error) {
	var t *models.Tool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.RemovedTool
		if err := tx.First(&rec, "id = ?", removedID).Error; err != nil {
			return err
		}
		t = &models.Tool{
			ID:           rec.ToolID,
			Name:         rec.Name,
			Model:        rec.Model,
			SerialNumber: rec.SerialNumber,
			Quantity:     rec.Quantity,
			Price:        rec.Price,
			Status:       models.StatusAvailable,
			Barcode:      rec.Barcode,
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RemovedTool{}, "id = ?", removedID).Error
	})
	if err != nil {
		return nil, err
	}
	t.Refresh()
	return t, nil
}

func (r *Repo) ListRemovedTools(ctx context.Context) ([]models.RemovedTool, error) {
	var recs []models.RemovedTool
	err := r.DB.WithContext(ctx).Order("removed_at DESC").Find(&recs).Error
	return recs, err
}

// ResetAvailability 一键把所有工具打回 Available 并清空持有人（救火用）
func (r *Repo) ResetAvailability(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Tool{}).
		Where("status <> ?", models.StatusMaintenance).
		Updates(map[string]any{
			"status":               models.StatusAvailable,
			"checked_out_by":       nil,
			"checked_in_by":        nil,
			"job_site":             nil,
			"expected_return_date": nil,
		})
	return res.RowsAffected, res.Error
}
