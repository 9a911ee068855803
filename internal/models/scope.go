package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectScope aggregates the four scope documents of a project. The
// documents are hard-deleted when the scope goes away; nothing outside the
// scope references them.
type ProjectScope struct {
	gorm.Model

	ProjectID             uint `gorm:"not null;uniqueIndex"`
	ScopeManagementPlanID *uint
	RequirementDocumentID *uint
	ScopeStatementID      *uint
	WBSID                 *uint

	// Relationships
	Project             Project                 `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ScopeManagementPlan *ScopeManagementPlan    `gorm:"foreignKey:ScopeManagementPlanID"`
	RequirementDocument *RequirementDocument    `gorm:"foreignKey:RequirementDocumentID"`
	ScopeStatement      *ScopeStatement         `gorm:"foreignKey:ScopeStatementID"`
	WBS                 *WorkBreakdownStructure `gorm:"foreignKey:WBSID"`
}

type ScopeManagementPlan struct {
	gorm.Model

	ScopePreparation       string
	WBSDevelopmentApproach string
	ScopeBaselineApproval  string
	DeliverableImpact      string
	RequirementPlanning    datatypes.JSON `gorm:"type:jsonb"`
}

type RequirementDocument struct {
	gorm.Model

	StakeholderNeeds   string
	Traceability       string
	AcceptanceCriteria string
}

type ScopeStatement struct {
	gorm.Model

	ScopeDescription   string
	Deliverables       string
	AcceptanceCriteria string
	Exclusions         string
	StatementOfWork    string
	IncludesSOW        bool `gorm:"not null;default:false"`
}

type WorkBreakdownStructure struct {
	gorm.Model

	WorkPackageName   string
	WorkDescription   string
	EstimatedDuration int

	// Relationships
	WorkPackages []WorkPackage `gorm:"foreignKey:WBSID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type WorkPackage struct {
	gorm.Model

	WBSID             uint `gorm:"not null;index"`
	Name              string
	Description       string
	EstimatedDuration int
}
