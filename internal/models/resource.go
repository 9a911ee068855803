package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Resource struct {
	gorm.Model

	ProjectID   uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null"` // e.g. Human, Equipment, Material
	Unit        string
	Description string

	// Available = Total minus the quantity held by every live assignment
	// referencing this resource.
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Available decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignments []Assignment `gorm:"foreignKey:ResourceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// Assignment commits a quantity of a resource, at an estimated cost, to a
// task. Its live presence is what the project budget and resource
// availability invariants sum over.
type Assignment struct {
	gorm.Model

	TaskID     uint `gorm:"not null;index"`
	ResourceID uint `gorm:"not null;index"`

	Quantity      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedCost decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AssignedAt    time.Time       `gorm:"not null"`

	// Relationships
	Task     Task     `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Resource Resource `gorm:"foreignKey:ResourceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
