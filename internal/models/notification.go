package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model

	UserID    uint   `gorm:"not null;index"`
	ProjectID uint   `gorm:"not null;index"`
	Type      string `gorm:"not null"` // e.g. "project_deleted", "member_removed"
	Message   string
	SentAt    *time.Time

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
