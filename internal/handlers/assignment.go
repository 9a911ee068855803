package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/logging"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/services"
	"github.com/taskup-dev/taskup/internal/utils"
)

type CreateAssignmentRequest struct {
	TaskID        uint            `json:"task_id" binding:"required"`
	ResourceID    uint            `json:"resource_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type AssignmentResponse struct {
	ID            uint            `json:"id"`
	TaskID        uint            `json:"task_id"`
	ResourceID    uint            `json:"resource_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

func assignmentResponse(assignment models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:            assignment.ID,
		TaskID:        assignment.TaskID,
		ResourceID:    assignment.ResourceID,
		Quantity:      assignment.Quantity,
		EstimatedCost: assignment.EstimatedCost,
	}
}

func CreateAssignment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateAssignmentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !body.Quantity.IsPositive() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	if body.EstimatedCost.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "estimated cost must not be negative"})
		return
	}

	manager := services.NewAssignmentManager(db.DB, logging.Logger)

	assignment, err := manager.Create(ctx.Request.Context(), userID, body.TaskID, body.ResourceID, body.Quantity, body.EstimatedCost)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, assignmentResponse(*assignment))
}

func UpdateAssignment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignmentID, err := utils.GetIDParam(ctx, "assignment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch models.AssignmentPatch

	if err := ctx.BindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if patch.Quantity != nil && !patch.Quantity.IsPositive() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	if patch.EstimatedCost != nil && patch.EstimatedCost.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "estimated cost must not be negative"})
		return
	}

	manager := services.NewAssignmentManager(db.DB, logging.Logger)

	assignment, err := manager.Update(ctx.Request.Context(), userID, assignmentID, patch)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, assignmentResponse(*assignment))
}

func ReverseAssignment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignmentID, err := utils.GetIDParam(ctx, "assignment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manager := services.NewAssignmentManager(db.DB, logging.Logger)

	if err := manager.Reverse(ctx.Request.Context(), userID, assignmentID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
