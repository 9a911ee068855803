package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/utils"
)

type CreateRiskRequest struct {
	Title      string         `json:"title" binding:"required"`
	Severity   string         `json:"severity" binding:"required"`
	Mitigation string         `json:"mitigation"`
	Details    datatypes.JSON `json:"details"`
}

func CreateRisk(ctx *gin.Context) {
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

	var body CreateRiskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	risk := models.Risk{
		ProjectID:  projectID,
		Title:      body.Title,
		Severity:   body.Severity,
		Mitigation: body.Mitigation,
		Details:    body.Details,
	}

	if err := db.DB.Create(&risk).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create risk"})
		return
	}

	ctx.JSON(http.StatusCreated, risk)
}

func ListRisks(ctx *gin.Context) {
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

	var risks []models.Risk

	if err := db.DB.Where("project_id = ?", projectID).Find(&risks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve risks"})
		return
	}

	ctx.JSON(http.StatusOK, risks)
}

func DeleteRisk(ctx *gin.Context) {
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

	riskID, err := utils.GetIDParam(ctx, "risk_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectAccess(ctx, userID, projectID); !ok {
		return
	}

	result := db.DB.Where("project_id = ?", projectID).Delete(&models.Risk{}, riskID)

	if result.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete risk"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
