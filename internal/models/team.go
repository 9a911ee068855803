package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`

	// Relationships
	Project     Project          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Memberships []TeamMembership `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// TeamMembership is deactivated, never deleted, when a member leaves a
// project: team history stays queryable.
type TeamMembership struct {
	gorm.Model

	TeamID   uint `gorm:"not null;uniqueIndex:idx_team_user"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_team_user"`
	IsActive bool `gorm:"not null;default:true"`

	// Relationships
	Team Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
