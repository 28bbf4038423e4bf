package models

import "time"

const NotificationTable = "notifications"

const (
	NotificationUnread = "Unread"
	NotificationRead   = "Read"
)

// Notification 唯一允许的变更是 Unread -> Read
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:20;not null" json:"type"` // Check-In / Check-Out
	ToolName  string    `gorm:"size:200;not null" json:"toolName"`
	Status    string    `gorm:"size:10;not null;default:'Unread';index" json:"status"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (Notification) TableName() string { return NotificationTable }
