// db/repo_history.go
package db

import (
	"context"

	"toolify/models"

	"gorm.io/gorm"
)

type HistoryQuery struct {
	ToolID string
	User   string
	Page   int
	Size   int
}

func (q *HistoryQuery) norm() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 50
	}
}

func (r *Repo) ListCheckOuts(ctx context.Context, q HistoryQuery) ([]models.CheckOutEntry, int64, error) {
	q.norm()
	tx := r.DB.WithContext(ctx).Model(&models.CheckOutEntry{})
	if q.ToolID != "" {
		tx = tx.Where("tool_id = ?", q.ToolID)
	}
	if q.User != "" {
		tx = tx.Where("\"user\" = ?", q.User)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []models.CheckOutEntry
	err := tx.Order("timestamp DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&entries).Error
	return entries, total, err
}

func (r *Repo) ListCheckIns(ctx context.Context, q HistoryQuery) ([]models.CheckInEntry, int64, error) {
	q.norm()
	tx := r.DB.WithContext(ctx).Model(&models.CheckInEntry{})
	if q.ToolID != "" {
		tx = tx.Where("tool_id = ?", q.ToolID)
	}
	if q.User != "" {
		tx = tx.Where("\"user\" = ?", q.User)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []models.CheckInEntry
	err := tx.Order("timestamp DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&entries).Error
	return entries, total, err
}

// ResetHistory 流水表唯一允许的非追加操作：整体清空
func (r *Repo) ResetHistory(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM " + models.CheckOutHistoryTable).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM " + models.CheckInHistoryTable).Error
	})
}
