package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/utils"
)

type CreateStakeholderRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Influence string `json:"influence"`
}

func CreateStakeholder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectAccess(ctx, userID, projectID); !ok {
		return
	}

	var body CreateStakeholderRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	stakeholder := models.Stakeholder{
		ProjectID: projectID,
		Name:      body.Name,
		Role:      body.Role,
		Influence: body.Influence,
	}

	if err := db.DB.Create(&stakeholder).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stakeholder"})
		return
	}

	ctx.JSON(http.StatusCreated, stakeholder)
}

func ListStakeholders(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectAccess(ctx, userID, projectID); !ok {
		return
	}

	var stakeholders []models.Stakeholder

	if err := db.DB.Where("project_id = ?", projectID).Find(&stakeholders).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stakeholders"})
		return
	}

	ctx.JSON(http.StatusOK, stakeholders)
}

// DeleteStakeholder removes the row outright; stakeholders have no
// soft-delete lifecycle.
func DeleteStakeholder(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stakeholderID, err := utils.GetIDParam(ctx, "stakeholder_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectAccess(ctx, userID, projectID); !ok {
		return
	}

	result := db.DB.Unscoped().Where("project_id = ?", projectID).Delete(&models.Stakeholder{}, stakeholderID)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stakeholder"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Stakeholder not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
