package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/logging"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/services"
	"github.com/taskup-dev/taskup/internal/utils"
)

type CreateTaskRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Deadline     *time.Time `json:"deadline"`
	TeamID       *uint      `json:"team_id"`
	ParentTaskID *uint      `json:"parent_task_id"`
	AssignedTo   *uint      `json:"assigned_to"`
}

type TaskResponse struct {
	ID           uint   `json:"id"`
	ProjectID    uint   `json:"project_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Completed    bool   `json:"completed"`
	ParentTaskID *uint  `json:"parent_task_id"`
	AssignedTo   *uint  `json:"assigned_to"`
}

func taskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		Title:        task.Title,
		Description:  task.Description,
		Completed:    task.Completed,
		ParentTaskID: task.ParentTaskID,
		AssignedTo:   task.AssignedTo,
	}
}

func CreateTask(ctx *gin.Context) {
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

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task := models.Task{
		ProjectID:    projectID,
		Title:        body.Title,
		Description:  body.Description,
		Deadline:     body.Deadline,
		TeamID:       body.TeamID,
		ParentTaskID: body.ParentTaskID,
		AssignedTo:   body.AssignedTo,
	}

	svc := services.NewTaskService(db.DB, logging.Logger)

	if err := svc.Create(ctx.Request.Context(), userID, &task); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, taskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch models.TaskPatch

	if err := ctx.BindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	svc := services.NewTaskService(db.DB, logging.Logger)

	task, err := svc.Update(ctx.Request.Context(), userID, taskID, patch)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, taskResponse(*task))
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewTaskService(db.DB, logging.Logger)

	if err := svc.Delete(ctx.Request.Context(), userID, taskID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
