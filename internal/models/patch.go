package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patch types carry one optional field per mutable attribute. Unknown or
// mistyped fields cannot reach an entity: there is no map-based update path.

// ProjectPatch deliberately omits TotalBudget; budget edits go through the
// ledger so RemainingBudget is recomputed alongside.
type ProjectPatch struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Deadline       *time.Time `json:"deadline"`
	DiscordWebhook *string    `json:"discord_webhook"`
	SlackWebhook   *string    `json:"slack_webhook"`
}

func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.Deadline != nil {
		project.Deadline = p.Deadline
	}
	if p.DiscordWebhook != nil {
		project.DiscordWebhook = *p.DiscordWebhook
	}
	if p.SlackWebhook != nil {
		project.SlackWebhook = *p.SlackWebhook
	}
}

type ResourcePatch struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Unit        *string `json:"unit"`
	Description *string `json:"description"`
}

func (p ResourcePatch) Apply(resource *Resource) {
	if p.Name != nil {
		resource.Name = *p.Name
	}
	if p.Type != nil {
		resource.Type = *p.Type
	}
	if p.Unit != nil {
		resource.Unit = *p.Unit
	}
	if p.Description != nil {
		resource.Description = *p.Description
	}
}

// AssignmentPatch only names the ledger-relevant fields; the manager
// validates the net delta before anything is applied.
type AssignmentPatch struct {
	Quantity      *decimal.Decimal `json:"quantity"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
}

func (p AssignmentPatch) Apply(assignment *Assignment) {
	if p.Quantity != nil {
		assignment.Quantity = *p.Quantity
	}
	if p.EstimatedCost != nil {
		assignment.EstimatedCost = *p.EstimatedCost
	}
}

type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Completed   *bool      `json:"completed"`
	TeamID      *uint      `json:"team_id"`
	AssignedTo  *uint      `json:"assigned_to"`
}

func (p TaskPatch) Apply(task *Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Deadline != nil {
		task.Deadline = p.Deadline
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	if p.TeamID != nil {
		task.TeamID = p.TeamID
	}
	if p.AssignedTo != nil {
		task.AssignedTo = p.AssignedTo
	}
}
