package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/access"
	"github.com/taskup-dev/taskup/internal/models"
)

// requireProjectAccess loads the project and answers whether the user may
// act on it. Writes the error response itself when access fails.
func requireProjectAccess(ctx *gin.Context, userID, projectID uint) (models.Project, bool) {
	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return project, false
	}

	if access.IsOwner(userID, project) {
		return project, true
	}

	var members []models.ProjectMember

	if err := db.DB.Where("project_id = ?", projectID).Find(&members).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project members"})
		return project, false
	}

	if !access.IsMember(userID, members) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
		return project, false
	}

	return project, true
}
