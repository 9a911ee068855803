package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskup-dev/taskup/internal/access"
	"github.com/taskup-dev/taskup/internal/ledger"
	"github.com/taskup-dev/taskup/internal/models"
)

// AssignmentManager sequences ledger operations around the lifecycle of a
// task-resource assignment. Every mutation locks the resource and project
// rows FOR UPDATE before the ledger reads them, so two racing reservations
// cannot both see the same availability and both fit.
type AssignmentManager struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewAssignmentManager(db *gorm.DB, log *logrus.Logger) *AssignmentManager {
	return &AssignmentManager{DB: db, Log: log}
}

// Create reserves quantity and cost and persists the new assignment, all in
// one transaction. Ledger rejections leave nothing mutated.
func (m *AssignmentManager) Create(ctx context.Context, actingUserID, taskID, resourceID uint, quantity, cost decimal.Decimal) (*models.Assignment, error) {
	var assignment models.Assignment

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFoundOr(err)
		}

		var resource models.Resource
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&resource, resourceID).Error; err != nil {
			return notFoundOr(err)
		}

		project, err := lockProject(tx, task.ProjectID)
		if err != nil {
			return err
		}

		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		newAvailable, newRemaining, err := ledger.Reserve(
			snapshotOf(resource), quantity,
			budgetOf(project), cost,
		)
		if err != nil {
			m.Log.WithFields(logrus.Fields{
				"task_id":     taskID,
				"resource_id": resourceID,
				"quantity":    quantity.String(),
				"cost":        cost.String(),
			}).WithError(err).Info("assignment rejected")
			return err
		}

		assignment = models.Assignment{
			TaskID:        taskID,
			ResourceID:    resourceID,
			Quantity:      quantity,
			EstimatedCost: cost,
			AssignedAt:    time.Now().UTC(),
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
		if err := tx.Model(&resource).Update("available", newAvailable).Error; err != nil {
			return err
		}
		return tx.Model(&project).Update("remaining_budget", newRemaining).Error
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// Update edits an assignment's quantity or cost in place. The net deltas are
// validated as one signed change; rejection leaves the assignment untouched.
func (m *AssignmentManager) Update(ctx context.Context, actingUserID, assignmentID uint, patch models.AssignmentPatch) (*models.Assignment, error) {
	var assignment models.Assignment

	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			return notFoundOr(err)
		}

		var task models.Task
		if err := tx.First(&task, assignment.TaskID).Error; err != nil {
			return notFoundOr(err)
		}

		var resource models.Resource
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&resource, assignment.ResourceID).Error; err != nil {
			return notFoundOr(err)
		}

		project, err := lockProject(tx, task.ProjectID)
		if err != nil {
			return err
		}

		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		newQuantity := assignment.Quantity
		if patch.Quantity != nil {
			newQuantity = *patch.Quantity
		}
		newCost := assignment.EstimatedCost
		if patch.EstimatedCost != nil {
			newCost = *patch.EstimatedCost
		}

		quantityDelta := newQuantity.Sub(assignment.Quantity)
		costDelta := newCost.Sub(assignment.EstimatedCost)

		newAvailable, newRemaining, err := ledger.Adjust(
			snapshotOf(resource), quantityDelta,
			budgetOf(project), costDelta,
		)
		if err != nil {
			return err
		}

		patch.Apply(&assignment)
		if err := tx.Save(&assignment).Error; err != nil {
			return err
		}
		if err := tx.Model(&resource).Update("available", newAvailable).Error; err != nil {
			return err
		}
		return tx.Model(&project).Update("remaining_budget", newRemaining).Error
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// Reverse releases an assignment's quantity and cost and marks it deleted.
// Reversing an already-deleted assignment is a no-op, not an error: cascades
// may revisit the same row.
func (m *AssignmentManager) Reverse(ctx context.Context, actingUserID, assignmentID uint) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		if err := tx.Unscoped().First(&assignment, assignmentID).Error; err != nil {
			return notFoundOr(err)
		}
		if assignment.DeletedAt.Valid {
			return nil // already reversed
		}

		var task models.Task
		if err := tx.First(&task, assignment.TaskID).Error; err != nil {
			return notFoundOr(err)
		}

		project, err := lockProject(tx, task.ProjectID)
		if err != nil {
			return err
		}

		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		return m.reverseLocked(tx, &assignment, project)
	})
}

// reverseLocked releases and deletes an already-loaded live assignment. The
// project row must be locked by the caller. A resource that has itself been
// soft-deleted is skipped: retiring a resource never refunds quantity.
func (m *AssignmentManager) reverseLocked(tx *gorm.DB, assignment *models.Assignment, project models.Project) error {
	var resource models.Resource
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&resource, assignment.ResourceID).Error
	switch {
	case err == nil:
		newAvailable, _ := ledger.Release(
			snapshotOf(resource), assignment.Quantity,
			budgetOf(project), decimal.Zero,
		)
		if err := tx.Model(&resource).Update("available", newAvailable).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// resource already retired, budget refund still applies
	default:
		return err
	}

	_, newRemaining := ledger.Release(
		ledger.ResourceSnapshot{}, decimal.Zero,
		budgetOf(project), assignment.EstimatedCost,
	)
	if err := tx.Model(&project).Update("remaining_budget", newRemaining).Error; err != nil {
		return err
	}

	return tx.Delete(assignment).Error
}

func lockProject(tx *gorm.DB, projectID uint) (models.Project, error) {
	var project models.Project
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, projectID).Error
	if err != nil {
		return models.Project{}, notFoundOr(err)
	}
	return project, nil
}

func requireAccess(tx *gorm.DB, userID uint, project models.Project) error {
	if access.IsOwner(userID, project) {
		return nil
	}
	var members []models.ProjectMember
	if err := tx.Where("project_id = ?", project.ID).Find(&members).Error; err != nil {
		return err
	}
	if !access.IsMember(userID, members) {
		return ErrForbidden
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func snapshotOf(resource models.Resource) ledger.ResourceSnapshot {
	return ledger.ResourceSnapshot{Total: resource.Total, Available: resource.Available}
}

func budgetOf(project models.Project) ledger.BudgetSnapshot {
	return ledger.BudgetSnapshot{Total: project.TotalBudget, Remaining: project.RemainingBudget}
}
