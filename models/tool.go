// models/tool.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const ToolTable = "tools"
const RemovedToolTable = "removed_tools"

// 状态是唯一权威字段，availability 只做派生，不落库
const (
	StatusAvailable   = "Available"
	StatusCheckedOut  = "Checked Out"
	StatusMaintenance = "Under Maintenance"
)

type Tool struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string  `gorm:"size:200;not null;index" json:"name"`
	Model        string  `gorm:"size:120" json:"model,omitempty"`
	SerialNumber string  `gorm:"size:120" json:"serialNumber,omitempty"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	Price        float64 `json:"price,omitempty"`
	Status       string  `gorm:"size:20;not null;default:'Available';index" json:"status"`

	// 条码只分配一次；没有条码的工具为 NULL（不能用空串，会撞唯一索引）
	Barcode *string `gorm:"size:64;uniqueIndex" json:"barcode,omitempty"`

	CheckedOutBy       *string    `gorm:"size:255" json:"checkedOutBy,omitempty"`
	CheckedInBy        *string    `gorm:"size:255" json:"checkedInBy,omitempty"`
	JobSite            *string    `gorm:"size:200" json:"jobSite,omitempty"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`

	// 派生字段，读出后由 AfterFind 计算
	Availability bool `gorm:"-" json:"availability"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tool) TableName() string { return ToolTable }

func (t *Tool) AfterFind(*gorm.DB) error {
	t.Availability = t.Status == StatusAvailable
	return nil
}

// Refresh 在内存变更状态后重算派生字段
func (t *Tool) Refresh() { t.Availability = t.Status == StatusAvailable }

// RemovedTool 软删除的去处：管理员删除工具时整行搬过来，可再恢复
type RemovedTool struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ToolID       string  `gorm:"type:uuid;index;not null" json:"toolId"`
	Name         string  `gorm:"size:200;not null" json:"name"`
	Model        string  `gorm:"size:120" json:"model,omitempty"`
	SerialNumber string  `gorm:"size:120" json:"serialNumber,omitempty"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	Price        float64 `json:"price,omitempty"`
	Status       string  `gorm:"size:20;not null" json:"status"`
	Barcode      *string `gorm:"size:64" json:"barcode,omitempty"`

	RemovedBy string    `gorm:"size:255" json:"removedBy"`
	RemovedAt time.Time `gorm:"index" json:"removedAt"`
}

func (RemovedTool) TableName() string { return RemovedToolTable }
