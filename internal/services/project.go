package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskup-dev/taskup/internal/access"
	"github.com/taskup-dev/taskup/internal/cascade"
	"github.com/taskup-dev/taskup/internal/ledger"
	"github.com/taskup-dev/taskup/internal/models"
)

// ProjectService owns the project lifecycle: creation, membership, budget
// edits, and the two cascade entry points (project deletion, member
// removal).
type ProjectService struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Executor *cascade.Executor
	Notifier *Notifier
}

func NewProjectService(db *gorm.DB, log *logrus.Logger) *ProjectService {
	return &ProjectService{
		DB:       db,
		Log:      log,
		Executor: cascade.NewExecutor(log),
		Notifier: &Notifier{},
	}
}

func (s *ProjectService) Create(ctx context.Context, ownerID uint, project *models.Project) error {
	project.OwnerID = ownerID
	project.RemainingBudget = project.TotalBudget
	return s.DB.WithContext(ctx).Create(project).Error
}

// ListForUser returns projects the user owns plus projects they are a live
// member of.
func (s *ProjectService) ListForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", userID).
		Or("id IN (?)", s.DB.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)).
		Find(&projects).Error
	return projects, err
}

// Update applies a typed patch and, when a new total budget is given, runs
// it through the ledger so the remaining budget keeps covering what live
// assignments already consumed.
func (s *ProjectService) Update(ctx context.Context, actingUserID, projectID uint, patch models.ProjectPatch, newTotalBudget *decimal.Decimal) (*models.Project, error) {
	var project models.Project

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		project = p

		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		patch.Apply(&project)

		if newTotalBudget != nil {
			newRemaining, err := ledger.AdjustTotalBudget(budgetOf(project), *newTotalBudget)
			if err != nil {
				return err
			}
			project.TotalBudget = *newTotalBudget
			project.RemainingBudget = newRemaining
		}

		return tx.Save(&project).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *ProjectService) AddMember(ctx context.Context, actingUserID, projectID, userID uint) (*models.ProjectMember, error) {
	var member models.ProjectMember

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return notFoundOr(err)
		}
		if !access.IsOwner(actingUserID, project) {
			return ErrForbidden
		}

		member = models.ProjectMember{ProjectID: projectID, UserID: userID}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// Delete soft-deletes a project and cascades over its dependency graph.
// Owner-only. Missing sub-resources are tolerated; a failure on the project
// itself or its authorization aborts before anything is touched.
func (s *ProjectService) Delete(ctx context.Context, actingUserID, projectID uint) (cascade.Summary, error) {
	var summary cascade.Summary
	var project models.Project

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&project, projectID).Error; err != nil {
			return notFoundOr(err)
		}
		if !access.IsOwner(actingUserID, project) {
			return ErrForbidden
		}

		graph, err := loadGraph(tx, project)
		if err != nil {
			return err
		}

		plan := cascade.PlanProjectErase(graph)
		summary, err = s.Executor.Apply(tx, plan)
		if err != nil {
			return err
		}

		return notifyMembers(tx, graph.Members, projectID, "project_deleted",
			"Project "+project.Name+" was deleted by its owner")
	})
	if err != nil {
		return summary, err
	}

	summary.State = cascade.StateCommitted

	s.Log.WithFields(logrus.Fields{
		"project_id":        projectID,
		"members_removed":   summary.MembersRemoved,
		"tasks_deleted":     summary.TasksDeleted,
		"optional_failures": len(summary.OptionalStepFailures),
	}).Info("project erased")

	go s.Notifier.ProjectDeleted(project, summary)

	return summary, nil
}

// RemoveMember soft-deletes one project member, deactivates their team
// memberships, and abandons their tasks. Invoking it again for an
// already-removed member succeeds with nothing to do.
func (s *ProjectService) RemoveMember(ctx context.Context, actingUserID, projectID, memberUserID uint) (cascade.Summary, error) {
	var summary cascade.Summary

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return notFoundOr(err)
		}
		if !access.IsOwner(actingUserID, project) && actingUserID != memberUserID {
			return ErrForbidden
		}

		var member models.ProjectMember
		err := tx.Unscoped().
			Where("project_id = ? AND user_id = ?", projectID, memberUserID).
			First(&member).Error
		if err != nil {
			return notFoundOr(err)
		}
		if member.DeletedAt.Valid {
			summary.State = cascade.StateCommitted // already removed
			return nil
		}

		graph, err := loadGraph(tx, project)
		if err != nil {
			return err
		}

		plan := cascade.PlanMemberRemoval(graph, member)
		summary, err = s.Executor.Apply(tx, plan)
		if err != nil {
			return err
		}

		return tx.Create(&models.Notification{
			UserID:    memberUserID,
			ProjectID: projectID,
			Type:      "member_removed",
			Message:   "You were removed from project " + project.Name,
		}).Error
	})
	if err != nil {
		return summary, err
	}

	summary.State = cascade.StateCommitted
	return summary, nil
}

func notifyMembers(tx *gorm.DB, members []models.ProjectMember, projectID uint, kind, message string) error {
	if len(members) == 0 {
		return nil
	}

	notifications := make([]models.Notification, 0, len(members))
	for _, member := range members {
		notifications = append(notifications, models.Notification{
			UserID:    member.UserID,
			ProjectID: projectID,
			Type:      kind,
			Message:   message,
		})
	}

	return tx.Create(&notifications).Error
}

// loadGraph snapshots every dependent entity of the project inside the
// caller's transaction. Default query scope keeps soft-deleted rows out;
// stakeholders are loaded unscoped because their erasure is physical.
func loadGraph(tx *gorm.DB, project models.Project) (cascade.Graph, error) {
	g := cascade.Graph{Project: project}

	if err := tx.Where("project_id = ?", project.ID).Find(&g.Members).Error; err != nil {
		return g, err
	}
	if err := tx.Where("project_id = ?", project.ID).Find(&g.Teams).Error; err != nil {
		return g, err
	}
	if len(g.Teams) > 0 {
		teamIDs := make([]uint, 0, len(g.Teams))
		for _, team := range g.Teams {
			teamIDs = append(teamIDs, team.ID)
		}
		if err := tx.Where("team_id IN ? AND is_active = ?", teamIDs, true).Find(&g.TeamMemberships).Error; err != nil {
			return g, err
		}
	}
	if err := tx.Where("project_id = ?", project.ID).Find(&g.Tasks).Error; err != nil {
		return g, err
	}
	if err := tx.Where("project_id = ?", project.ID).Find(&g.Resources).Error; err != nil {
		return g, err
	}
	if err := tx.Where("project_id = ?", project.ID).Find(&g.Risks).Error; err != nil {
		return g, err
	}
	if err := tx.Unscoped().Where("project_id = ?", project.ID).Find(&g.Stakeholders).Error; err != nil {
		return g, err
	}

	var scope models.ProjectScope
	err := tx.Where("project_id = ?", project.ID).First(&scope).Error
	switch {
	case err == nil:
		g.Scope = &scope
	case errors.Is(err, gorm.ErrRecordNotFound):
		// a project may never have had a scope
	default:
		return g, err
	}

	return g, nil
}
