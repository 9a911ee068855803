package models

import "gorm.io/gorm"

// Stakeholder rows are fully removed when their project is erased, not
// soft-deleted.
type Stakeholder struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Role      string
	Influence string // "low", "medium", "high"

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
