package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/taskup-dev/taskup/internal/models"
)

type ResourceService struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewResourceService(db *gorm.DB, log *logrus.Logger) *ResourceService {
	return &ResourceService{DB: db, Log: log}
}

func (s *ResourceService) Create(ctx context.Context, actingUserID uint, resource *models.Resource) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, resource.ProjectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		if resource.Available.IsZero() && !resource.Total.IsZero() {
			resource.Available = resource.Total
		}
		return tx.Create(resource).Error
	})
}

func (s *ResourceService) ListByProject(ctx context.Context, actingUserID, projectID uint) ([]models.Resource, error) {
	var resources []models.Resource

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Find(&resources).Error
	})
	if err != nil {
		return nil, err
	}

	return resources, nil
}

func (s *ResourceService) Update(ctx context.Context, actingUserID, resourceID uint, patch models.ResourcePatch) (*models.Resource, error) {
	var resource models.Resource

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&resource, resourceID).Error; err != nil {
			return notFoundOr(err)
		}

		var project models.Project
		if err := tx.First(&project, resource.ProjectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		patch.Apply(&resource)
		return tx.Save(&resource).Error
	})
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// Delete retires a resource and its live assignments. No budget or quantity
// is refunded: removing a resource does not undo the work it was spent on.
func (s *ResourceService) Delete(ctx context.Context, actingUserID, resourceID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resource models.Resource
		if err := tx.First(&resource, resourceID).Error; err != nil {
			return notFoundOr(err)
		}

		var project models.Project
		if err := tx.First(&project, resource.ProjectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		if err := tx.Where("resource_id = ?", resourceID).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&resource).Error
	})
}
