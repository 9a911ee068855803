package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/taskup-dev/taskup/internal/models"
)

type TaskService struct {
	DB  *gorm.DB
	Log *logrus.Logger

	assignments *AssignmentManager
}

func NewTaskService(db *gorm.DB, log *logrus.Logger) *TaskService {
	return &TaskService{DB: db, Log: log, assignments: NewAssignmentManager(db, log)}
}

func (s *TaskService) Create(ctx context.Context, actingUserID uint, task *models.Task) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, task.ProjectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}
		return tx.Create(task).Error
	})
}

func (s *TaskService) Update(ctx context.Context, actingUserID, taskID uint, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFoundOr(err)
		}

		var project models.Project
		if err := tx.First(&project, task.ProjectID).Error; err != nil {
			return notFoundOr(err)
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		patch.Apply(&task)
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Delete soft-deletes a task and its subtask tree. Unlike the member-removal
// cascade, directly deleting a task reverses its live assignments: the work
// is called off, so its reserved quantity and cost flow back.
func (s *TaskService) Delete(ctx context.Context, actingUserID, taskID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFoundOr(err)
		}

		project, err := lockProject(tx, task.ProjectID)
		if err != nil {
			return err
		}
		if err := requireAccess(tx, actingUserID, project); err != nil {
			return err
		}

		visited := make(map[uint]bool)
		return s.deleteTree(tx, task.ID, task.ProjectID, visited)
	})
}

func (s *TaskService) deleteTree(tx *gorm.DB, taskID, projectID uint, visited map[uint]bool) error {
	if visited[taskID] {
		return nil
	}
	visited[taskID] = true

	var assignments []models.Assignment
	if err := tx.Where("task_id = ?", taskID).Find(&assignments).Error; err != nil {
		return err
	}
	for i := range assignments {
		// re-read the project each time: earlier reversals moved its budget
		project, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if err := s.assignments.reverseLocked(tx, &assignments[i], project); err != nil {
			return err
		}
	}

	var subtaskIDs []uint
	if err := tx.Model(&models.Task{}).Where("parent_task_id = ?", taskID).Pluck("id", &subtaskIDs).Error; err != nil {
		return err
	}
	for _, childID := range subtaskIDs {
		if err := s.deleteTree(tx, childID, projectID, visited); err != nil {
			return err
		}
	}

	return tx.Delete(&models.Task{}, taskID).Error
}
