package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/logging"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/services"
	"github.com/taskup-dev/taskup/internal/utils"
)

type CreateProjectRequest struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description"`
	Deadline       *time.Time       `json:"deadline"`
	TotalBudget    *decimal.Decimal `json:"total_budget"`
	DiscordWebhook string           `json:"discord_webhook"`
	SlackWebhook   string           `json:"slack_webhook"`
}

type UpdateProjectRequest struct {
	models.ProjectPatch
	TotalBudget *decimal.Decimal `json:"total_budget"`
}

type AddMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ProjectResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	OwnerID         uint            `json:"owner_id"`
	TotalBudget     decimal.Decimal `json:"total_budget"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
}

func projectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:              project.ID,
		Name:            project.Name,
		Description:     project.Description,
		Status:          project.Status,
		OwnerID:         project.OwnerID,
		TotalBudget:     project.TotalBudget,
		RemainingBudget: project.RemainingBudget,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Name:           body.Name,
		Description:    body.Description,
		Status:         models.ProjectStatusNotStarted,
		Deadline:       body.Deadline,
		DiscordWebhook: body.DiscordWebhook,
		SlackWebhook:   body.SlackWebhook,
	}
	if body.TotalBudget != nil {
		project.TotalBudget = *body.TotalBudget
	}

	svc := services.NewProjectService(db.DB, logging.Logger)

	if err := svc.Create(ctx.Request.Context(), userID, &project); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	svc := services.NewProjectService(db.DB, logging.Logger)

	projects, err := svc.ListForUser(ctx.Request.Context(), userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
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

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	svc := services.NewProjectService(db.DB, logging.Logger)

	project, err := svc.Update(ctx.Request.Context(), userID, projectID, body.ProjectPatch, body.TotalBudget)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(*project))
}

func DeleteProject(ctx *gin.Context) {
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

	svc := services.NewProjectService(db.DB, logging.Logger)

	summary, err := svc.Delete(ctx.Request.Context(), userID, projectID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastProjectEvent(projectID, "project_deleted")

	ctx.JSON(http.StatusOK, gin.H{"summary": summary})
}

func AddProjectMember(ctx *gin.Context) {
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

	var body AddMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	svc := services.NewProjectService(db.DB, logging.Logger)

	member, err := svc.AddMember(ctx.Request.Context(), userID, projectID, body.UserID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"member_id": member.ID, "user_id": member.UserID})
}

func RemoveProjectMember(ctx *gin.Context) {
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

	memberUserID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewProjectService(db.DB, logging.Logger)

	summary, err := svc.RemoveMember(ctx.Request.Context(), userID, projectID, memberUserID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	BroadcastProjectEvent(projectID, "member_removed")

	ctx.JSON(http.StatusOK, gin.H{"summary": summary})
}
