package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Risk struct {
	gorm.Model

	ProjectID  uint   `gorm:"not null;index"`
	Title      string `gorm:"not null"`
	Severity   string `gorm:"not null"` // "low", "medium", "high"
	Mitigation string
	Details    datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
