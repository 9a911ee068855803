package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	ProjectID    uint `gorm:"not null;index"`
	TeamID       *uint
	ParentTaskID *uint  `gorm:"index"`
	AssignedTo   *uint  `gorm:"index"`
	Title        string `gorm:"not null"`
	Description  string
	Deadline     *time.Time
	Completed    bool `gorm:"not null;default:false"`

	// Relationships
	Project     Project      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Team        *Team        `gorm:"foreignKey:TeamID"`
	ParentTask  *Task        `gorm:"foreignKey:ParentTaskID"`
	Subtasks    []Task       `gorm:"foreignKey:ParentTaskID"`
	Assignee    *User        `gorm:"foreignKey:AssignedTo"`
	Assignments []Assignment `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
