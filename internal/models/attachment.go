package models

import "gorm.io/gorm"

const (
	AttachmentEntityProject = "Project"
	AttachmentEntityTask    = "Task"
	AttachmentEntityUser    = "User"
)

type Attachment struct {
	gorm.Model

	ProjectID  uint  `gorm:"not null;index"`
	TaskID     *uint `gorm:"index"`
	UploadedBy uint  `gorm:"not null"`

	// EntityType decides who owns the file. User-owned attachments (profile
	// pictures) survive project deletion.
	EntityType string `gorm:"not null"`
	FileName   string `gorm:"not null"`
	StorageKey string `gorm:"not null;uniqueIndex"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Task     *Task   `gorm:"foreignKey:TaskID"`
	Uploader User    `gorm:"foreignKey:UploadedBy"`
}
