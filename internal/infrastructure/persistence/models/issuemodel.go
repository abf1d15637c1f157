package models

import "gorm.io/datatypes"

type IssueModel struct {
	ID                  uint           `gorm:"primaryKey;autoIncrement:false"`
	ReportCode          string         `gorm:"uniqueIndex;size:32;not null"`
	ClientName          string         `gorm:"size:200;not null"`
	Phone               string         `gorm:"size:64;not null"`
	Email               string         `gorm:"size:255;not null"`
	Project             string         `gorm:"size:64;not null;index"`
	Description         string         `gorm:"type:text;not null"`
	Images              datatypes.JSON `gorm:"column:images"`
	Status              string         `gorm:"size:20;not null;index"`
	Priority            string         `gorm:"size:20;not null;index"`
	TechLevel           string         `gorm:"size:8;not null;index"`
	AssignedTo          string         `gorm:"size:64;not null"`
	CreatedAt           int64          `gorm:"autoCreateTime:false;not null"`
	WorkStartAt         *int64
	CompletedAt         *int64
	ResolutionNotes     string `gorm:"type:text"`
	TotalResolutionTime string `gorm:"size:32"`
	UpdatedAt           int64  `gorm:"autoUpdateTime:false;not null"`
	UpdatedBy           string `gorm:"size:200"`
}

func (IssueModel) TableName() string {
	return "issues"
}
