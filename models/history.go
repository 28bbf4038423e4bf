// models/history.go
package models

import "time"

const CheckOutHistoryTable = "check_out_history"
const CheckInHistoryTable = "check_in_history"

const (
	ActionCheckOut = "Check-Out"
	ActionCheckIn  = "Check-In"
)

// 两张表都是只追加的审计流水；除管理员整体清空外从不改写。
// toolName 是落笔时的快照，允许与 tools 表漂移。

type CheckOutEntry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ToolID    string     `gorm:"type:uuid;index;not null" json:"toolId"`
	ToolName  string     `gorm:"size:200;not null" json:"toolName"`
	User      string     `gorm:"size:255;not null;index" json:"user"`
	JobSite   *string    `gorm:"size:200" json:"jobSite,omitempty"`
	DueAt     *time.Time `json:"expectedReturnDate,omitempty"`
	Action    string     `gorm:"size:20;not null" json:"action"`
	Timestamp time.Time  `gorm:"index;not null" json:"timestamp"`
}

func (CheckOutEntry) TableName() string { return CheckOutHistoryTable }

type CheckInEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ToolID    string    `gorm:"type:uuid;index;not null" json:"toolId"`
	ToolName  string    `gorm:"size:200;not null" json:"toolName"`
	User      string    `gorm:"size:255;not null;index" json:"user"`
	Action    string    `gorm:"size:20;not null" json:"action"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (CheckInEntry) TableName() string { return CheckInHistoryTable }
