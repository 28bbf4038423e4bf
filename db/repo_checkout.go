// db/repo_checkout.go
package db

import (
	"context"
	"errors"

	"toolify/models"
	"toolify/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutStore 是 workflow.Store 的 GORM 实现：
// 借出/归还的三笔写（tools + 流水 + 通知）收进同一个事务，
// 并用 SELECT ... FOR UPDATE 锁行，堵住两个客户端同时借走一件工具的竞态。
type CheckoutStore struct{ DB *gorm.DB }

func NewCheckoutStore(db *gorm.DB) *CheckoutStore { return &CheckoutStore{DB: db} }

var _ workflow.Store = (*CheckoutStore)(nil)

func (s *CheckoutStore) InTx(ctx context.Context, fn func(workflow.TxStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txStore{tx: tx})
	})
}

type txStore struct{ tx *gorm.DB }

func (t *txStore) LockTool(ctx context.Context, toolID string) (*models.Tool, error) {
	var tool models.Tool
	if err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tool, "id = ?", toolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrToolNotFound
		}
		return nil, err
	}
	return &tool, nil
}

func (t *txStore) UpdateTool(ctx context.Context, tool *models.Tool) error {
	// Save 全量写，nil 指针字段才能真正清空
	return t.tx.Save(tool).Error
}

func (t *txStore) AppendCheckOut(ctx context.Context, e *models.CheckOutEntry) error {
	return t.tx.Create(e).Error
}

func (t *txStore) AppendCheckIn(ctx context.Context, e *models.CheckInEntry) error {
	return t.tx.Create(e).Error
}

func (t *txStore) AppendNotification(ctx context.Context, n *models.Notification) error {
	return t.tx.Create(n).Error
}
