package models

import "time"

const JobSiteTable = "job_sites"

// JobSite 独立生命周期；Tool 里按名字引用，不做外键
type JobSite struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Location   string    `gorm:"size:255;not null" json:"location"`
	Supervisor string    `gorm:"size:255" json:"supervisor,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (JobSite) TableName() string { return JobSiteTable }
