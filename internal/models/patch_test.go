package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProjectPatchApply(t *testing.T) {
	deadline := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	project := Project{
		Name:        "Alpha",
		Description: "original",
		Status:      ProjectStatusNotStarted,
	}

	patch := ProjectPatch{
		Name:     strPtr("Beta"),
		Status:   strPtr(ProjectStatusInProgress),
		Deadline: &deadline,
	}
	patch.Apply(&project)

	assert.Equal(t, "Beta", project.Name)
	assert.Equal(t, "original", project.Description)
	assert.Equal(t, ProjectStatusInProgress, project.Status)
	assert.Equal(t, &deadline, project.Deadline)
}

func TestProjectPatchEmptyIsNoop(t *testing.T) {
	project := Project{Name: "Alpha", Status: ProjectStatusOnHold}

	ProjectPatch{}.Apply(&project)

	assert.Equal(t, "Alpha", project.Name)
	assert.Equal(t, ProjectStatusOnHold, project.Status)
}

func TestAssignmentPatchApply(t *testing.T) {
	assignment := Assignment{
		Quantity:      decimal.NewFromInt(4),
		EstimatedCost: decimal.NewFromInt(300),
	}

	quantity := decimal.NewFromInt(2)
	AssignmentPatch{Quantity: &quantity}.Apply(&assignment)

	assert.True(t, assignment.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, assignment.EstimatedCost.Equal(decimal.NewFromInt(300)))
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{Title: "Write report", Completed: false}

	completed := true
	assignee := uint(9)
	TaskPatch{Completed: &completed, AssignedTo: &assignee}.Apply(&task)

	assert.Equal(t, "Write report", task.Title)
	assert.True(t, task.Completed)
	assert.Equal(t, &assignee, task.AssignedTo)
}

func TestResourcePatchApply(t *testing.T) {
	resource := Resource{Name: "Crane", Type: "Equipment", Unit: "hours"}

	ResourcePatch{Unit: strPtr("days")}.Apply(&resource)

	assert.Equal(t, "Crane", resource.Name)
	assert.Equal(t, "days", resource.Unit)
}
