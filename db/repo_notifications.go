package db

import (
	"context"
	"errors"

	"toolify/models"
)

func (r *Repo) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	tx := r.DB.WithContext(ctx).Model(&models.Notification{})
	if unreadOnly {
		tx = tx.Where("status = ?", models.NotificationUnread)
	}
	var ns []models.Notification
	err := tx.Order("timestamp DESC").Limit(limit).Find(&ns).Error
	return ns, err
}

func (r *Repo) CountUnreadNotifications(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("status = ?", models.NotificationUnread).
		Count(&n).Error
	return n, err
}

// MarkNotificationRead 唯一的变更：Unread -> Read
func (r *Repo) MarkNotificationRead(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND status = ?", id, models.NotificationUnread).
		Update("status", models.NotificationRead)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("notification not found or already read")
	}
	return nil
}

func (r *Repo) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("status = ?", models.NotificationUnread).
		Update("status", models.NotificationRead)
	return res.RowsAffected, res.Error
}
