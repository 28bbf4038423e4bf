// workflow/workflow.go
package workflow

import (
	"context"
	"strings"
	"time"

	"toolify/models"

	"go.uber.org/zap"
)

// Store 由存储层实现；InTx 里的所有写要么全部落盘要么全部回滚。
// 登记状态、流水、通知三笔写在源头是三次独立调用，这里收进一个事务。
type Store interface {
	InTx(ctx context.Context, fn func(TxStore) error) error
}

// TxStore 事务内可见的操作集合
type TxStore interface {
	// LockTool 取出并锁住该行，直到事务结束（防并发双借出）
	LockTool(ctx context.Context, toolID string) (*models.Tool, error)
	UpdateTool(ctx context.Context, t *models.Tool) error
	AppendCheckOut(ctx context.Context, e *models.CheckOutEntry) error
	AppendCheckIn(ctx context.Context, e *models.CheckInEntry) error
	AppendNotification(ctx context.Context, n *models.Notification) error
}

type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: func() time.Time { return time.Now().UTC() }}
}

type CheckOutInput struct {
	ToolID         string
	User           string // 已认证用户的邮箱
	JobSite        *string
	ExpectedReturn *time.Time
}

// CheckOut: Available -> Checked Out，同事务追加流水与通知
func (s *Service) CheckOut(ctx context.Context, in CheckOutInput) (*models.Tool, error) {
	if strings.TrimSpace(in.User) == "" {
		return nil, ErrNoUser
	}
	var out *models.Tool
	err := s.store.InTx(ctx, func(tx TxStore) error {
		t, err := tx.LockTool(ctx, in.ToolID)
		if err != nil {
			return err
		}
		if t.Status != models.StatusAvailable {
			return ErrInvalidTransition
		}

		now := s.now()
		t.Status = models.StatusCheckedOut
		t.CheckedOutBy = &in.User
		t.CheckedInBy = nil
		t.JobSite = in.JobSite
		t.ExpectedReturnDate = in.ExpectedReturn
		if err := tx.UpdateTool(ctx, t); err != nil {
			return err
		}

		if err := tx.AppendCheckOut(ctx, &models.CheckOutEntry{
			ToolID:    t.ID,
			ToolName:  t.Name,
			User:      in.User,
			JobSite:   in.JobSite,
			DueAt:     in.ExpectedReturn,
			Action:    models.ActionCheckOut,
			Timestamp: now,
		}); err != nil {
			return err
		}
		if err := tx.AppendNotification(ctx, &models.Notification{
			Type:      models.ActionCheckOut,
			ToolName:  t.Name,
			Status:    models.NotificationUnread,
			Timestamp: now,
		}); err != nil {
			return err
		}

		t.Refresh()
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("tool checked out",
		zap.String("toolId", out.ID),
		zap.String("user", in.User))
	return out, nil
}

// CheckIn: Checked Out -> Available，清空持有人字段
func (s *Service) CheckIn(ctx context.Context, toolID, user string) (*models.Tool, error) {
	if strings.TrimSpace(user) == "" {
		return nil, ErrNoUser
	}
	var out *models.Tool
	err := s.store.InTx(ctx, func(tx TxStore) error {
		t, err := tx.LockTool(ctx, toolID)
		if err != nil {
			return err
		}
		if t.Status != models.StatusCheckedOut {
			return ErrInvalidTransition
		}

		now := s.now()
		t.Status = models.StatusAvailable
		t.CheckedOutBy = nil
		t.CheckedInBy = &user
		t.JobSite = nil
		t.ExpectedReturnDate = nil
		if err := tx.UpdateTool(ctx, t); err != nil {
			return err
		}

		if err := tx.AppendCheckIn(ctx, &models.CheckInEntry{
			ToolID:    t.ID,
			ToolName:  t.Name,
			User:      user,
			Action:    models.ActionCheckIn,
			Timestamp: now,
		}); err != nil {
			return err
		}
		if err := tx.AppendNotification(ctx, &models.Notification{
			Type:      models.ActionCheckIn,
			ToolName:  t.Name,
			Status:    models.NotificationUnread,
			Timestamp: now,
		}); err != nil {
			return err
		}

		t.Refresh()
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("tool checked in",
		zap.String("toolId", out.ID),
		zap.String("user", user))
	return out, nil
}
