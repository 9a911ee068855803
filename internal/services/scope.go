package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/taskup-dev/taskup/internal/models"
)

// ScopeService manages the project scope aggregate and its four owned
// documents. Documents live and die with the scope; the cascade hard-deletes
// them because nothing else references them.
type ScopeService struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewScopeService(db *gorm.DB, log *logrus.Logger) *ScopeService {
	return &ScopeService{DB: db, Log: log}
}

func (s *ScopeService) Get(ctx context.Context, actingUserID, projectID uint) (*models.ProjectScope, error) {
	var scope models.ProjectScope

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}
		return notFoundOr(tx.Where("project_id = ?", projectID).
			Preload("ScopeManagementPlan").
			Preload("RequirementDocument").
			Preload("ScopeStatement").
			Preload("WBS").
			Preload("WBS.WorkPackages").
			First(&scope).Error)
	})
	if err != nil {
		return nil, err
	}

	return &scope, nil
}

// SetManagementPlan attaches (or replaces) the scope management plan,
// creating the scope aggregate on first use.
func (s *ScopeService) SetManagementPlan(ctx context.Context, actingUserID, projectID uint, plan *models.ScopeManagementPlan) error {
	return s.withScope(ctx, actingUserID, projectID, func(tx *gorm.DB, scope *models.ProjectScope) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		scope.ScopeManagementPlanID = &plan.ID
		return tx.Save(scope).Error
	})
}

func (s *ScopeService) SetRequirementDocument(ctx context.Context, actingUserID, projectID uint, doc *models.RequirementDocument) error {
	return s.withScope(ctx, actingUserID, projectID, func(tx *gorm.DB, scope *models.ProjectScope) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		scope.RequirementDocumentID = &doc.ID
		return tx.Save(scope).Error
	})
}

func (s *ScopeService) SetScopeStatement(ctx context.Context, actingUserID, projectID uint, stmt *models.ScopeStatement) error {
	return s.withScope(ctx, actingUserID, projectID, func(tx *gorm.DB, scope *models.ProjectScope) error {
		stmt.IncludesSOW = stmt.StatementOfWork != ""
		if err := tx.Create(stmt).Error; err != nil {
			return err
		}
		scope.ScopeStatementID = &stmt.ID
		return tx.Save(scope).Error
	})
}

// SetWBS stores a work breakdown structure with its packages; the structure
// duration is the sum of package durations.
func (s *ScopeService) SetWBS(ctx context.Context, actingUserID, projectID uint, wbs *models.WorkBreakdownStructure) error {
	return s.withScope(ctx, actingUserID, projectID, func(tx *gorm.DB, scope *models.ProjectScope) error {
		total := 0
		for _, wp := range wbs.WorkPackages {
			total += wp.EstimatedDuration
		}
		wbs.EstimatedDuration = total

		if err := tx.Create(wbs).Error; err != nil {
			return err
		}
		scope.WBSID = &wbs.ID
		return tx.Save(scope).Error
	})
}

func (s *ScopeService) withScope(ctx context.Context, actingUserID, projectID uint, fn func(tx *gorm.DB, scope *models.ProjectScope) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		var scope models.ProjectScope
		err := tx.Where("project_id = ?", projectID).First(&scope).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			scope = models.ProjectScope{ProjectID: projectID}
			err = tx.Create(&scope).Error
		}
		if err != nil {
			return err
		}

		return fn(tx, &scope)
	})
}
