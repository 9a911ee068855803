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

type CreateResourceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
}

type ResourceResponse struct {
	ID        uint            `json:"id"`
	ProjectID uint            `json:"project_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Unit      string          `json:"unit"`
	Total     decimal.Decimal `json:"total"`
	Available decimal.Decimal `json:"available"`
}

func resourceResponse(resource models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        resource.ID,
		ProjectID: resource.ProjectID,
		Name:      resource.Name,
		Type:      resource.Type,
		Unit:      resource.Unit,
		Total:     resource.Total,
		Available: resource.Available,
	}
}

func CreateResource(ctx *gin.Context) {
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

	var body CreateResourceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Total.IsNegative() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "total must not be negative"})
		return
	}

	resource := models.Resource{
		ProjectID:   projectID,
		Name:        body.Name,
		Type:        body.Type,
		Unit:        body.Unit,
		Description: body.Description,
		Total:       body.Total,
		Available:   body.Total,
	}

	svc := services.NewResourceService(db.DB, logging.Logger)

	if err := svc.Create(ctx.Request.Context(), userID, &resource); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resourceResponse(resource))
}

func ListResources(ctx *gin.Context) {
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

	svc := services.NewResourceService(db.DB, logging.Logger)

	resources, err := svc.ListByProject(ctx.Request.Context(), userID, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ResourceResponse, 0, len(resources))

	for _, resource := range resources {
		response = append(response, resourceResponse(resource))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateResource(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	resourceID, err := utils.GetIDParam(ctx, "resource_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch models.ResourcePatch

	if err := ctx.BindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	svc := services.NewResourceService(db.DB, logging.Logger)

	resource, err := svc.Update(ctx.Request.Context(), userID, resourceID, patch)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resourceResponse(*resource))
}

func DeleteResource(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	resourceID, err := utils.GetIDParam(ctx, "resource_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewResourceService(db.DB, logging.Logger)

	if err := svc.Delete(ctx.Request.Context(), userID, resourceID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
